package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotAuthenticated indicates an operation needs a session and none exists.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrUnknownFileType indicates a file type outside the known export set.
	ErrUnknownFileType = errors.New("unknown file type")

	// ErrNoAnalysis indicates no chart data is available yet.
	ErrNoAnalysis = errors.New("no analysis data")
)

// DefaultAnalysisMessage is used when the service rejects an analysis without a message.
const DefaultAnalysisMessage = "analysis failed"

// AnalysisError is returned when the grading service answers an analysis
// request with success=false.
type AnalysisError struct {
	Message string
}

// NewAnalysisError creates an AnalysisError, falling back to the default message.
func NewAnalysisError(message string) *AnalysisError {
	if message == "" {
		message = DefaultAnalysisMessage
	}
	return &AnalysisError{Message: message}
}

func (e *AnalysisError) Error() string {
	return e.Message
}

// IsAnalysisError reports whether err carries a service-reported analysis failure.
func IsAnalysisError(err error) bool {
	var analysisErr *AnalysisError
	return errors.As(err, &analysisErr)
}

// RequireSession returns ErrNotAuthenticated wrapped with a hint when s is nil.
func RequireSession(s *Session) error {
	if s == nil {
		return fmt.Errorf("%w: run 'etis login' first", ErrNotAuthenticated)
	}
	return nil
}
