package driving

import "github.com/custodia-labs/etis-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetBaseURL updates the grading service URL.
	SetBaseURL(baseURL string) error

	// SetToken updates the bearer token sent to the grading service.
	SetToken(token string) error

	// SetDownloadDir updates where downloads are written.
	SetDownloadDir(dir string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
