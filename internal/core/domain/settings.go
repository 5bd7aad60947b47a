package domain

import "time"

// Default settings values.
const (
	// DefaultAPIBaseURL is where the grading service listens by default.
	DefaultAPIBaseURL = "http://localhost:8000"

	// DefaultAPITimeout bounds a single request. Analyses scrape the upstream
	// records system and can take a while.
	DefaultAPITimeout = 120 * time.Second

	// DefaultRateLimit is the outgoing request rate in requests per second.
	DefaultRateLimit = 2.0
)

// APISettings configures the grading service client.
type APISettings struct {
	// BaseURL is the grading service root, without a trailing slash.
	BaseURL string

	// Timeout bounds each request.
	Timeout time.Duration

	// Token is an optional bearer token sent with every request.
	Token string

	// RateLimit is the sustained request rate in requests per second.
	RateLimit float64
}

// IsAuthenticated returns true if a bearer token is configured.
func (a APISettings) IsAuthenticated() bool {
	return a.Token != ""
}

// DownloadSettings configures where exports are saved.
type DownloadSettings struct {
	// Dir is the directory downloads are written to. Empty means the
	// current working directory.
	Dir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	API      APISettings
	Download DownloadSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:   DefaultAPIBaseURL,
			Timeout:   DefaultAPITimeout,
			RateLimit: DefaultRateLimit,
		},
	}
}
