package driven

import (
	"context"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// AnalyzeRequest is the body of an analysis call.
type AnalyzeRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Term     string `json:"term"`
}

// GradingAPI is the remote grading service.
// Implementations return transport and non-2xx failures as errors and never retry.
type GradingAPI interface {
	// Login authenticates the credentials and returns the available terms.
	Login(ctx context.Context, creds domain.Credentials) ([]int, error)

	// Analyze requests an analysis. A well-formed response is returned as-is,
	// including one with Success=false; interpreting it is the caller's job.
	Analyze(ctx context.Context, req AnalyzeRequest) (*domain.AnalysisResult, error)

	// Download fetches the named export of the last analysis for username and term.
	Download(ctx context.Context, fileType domain.FileType, username, term string) ([]byte, error)
}
