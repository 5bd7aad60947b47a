package services

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// EnvAPIBase overrides the configured grading service URL.
const EnvAPIBase = "ETIS_API_BASE"

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAPIBaseURL   = "api.base_url"
	keyAPITimeout   = "api.timeout"
	keyAPIToken     = "api.token"
	keyAPIRateLimit = "api.rate_limit"
	keyDownloadDir  = "download.dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings.
// The ETIS_API_BASE environment variable takes precedence over the stored URL.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   s.getString(keyAPIBaseURL, defaults.API.BaseURL),
			Timeout:   s.getSeconds(keyAPITimeout, defaults.API.Timeout),
			Token:     s.configStore.GetString(keyAPIToken),
			RateLimit: s.getFloat(keyAPIRateLimit, defaults.API.RateLimit),
		},
		Download: domain.DownloadSettings{
			Dir: s.configStore.GetString(keyDownloadDir),
		},
	}

	if env, ok := s.lookupEnv(EnvAPIBase); ok && env != "" {
		settings.API.BaseURL = env
	}
	settings.API.BaseURL = strings.TrimRight(settings.API.BaseURL, "/")

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyAPIBaseURL, settings.API.BaseURL); err != nil {
		return fmt.Errorf("save api base_url: %w", err)
	}
	if err := s.configStore.Set(keyAPITimeout, int(settings.API.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save api timeout: %w", err)
	}
	if settings.API.Token != "" {
		if err := s.configStore.Set(keyAPIToken, settings.API.Token); err != nil {
			return fmt.Errorf("save api token: %w", err)
		}
	}
	if err := s.configStore.Set(keyAPIRateLimit, settings.API.RateLimit); err != nil {
		return fmt.Errorf("save api rate_limit: %w", err)
	}
	if err := s.configStore.Set(keyDownloadDir, settings.Download.Dir); err != nil {
		return fmt.Errorf("save download dir: %w", err)
	}
	return nil
}

// SetBaseURL updates the grading service URL.
func (s *SettingsService) SetBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: invalid base URL %q", domain.ErrInvalidInput, baseURL)
	}

	return s.configStore.Set(keyAPIBaseURL, strings.TrimRight(baseURL, "/"))
}

// SetToken updates the bearer token sent to the grading service.
func (s *SettingsService) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: empty token", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyAPIToken, token)
}

// SetDownloadDir updates where downloads are written.
func (s *SettingsService) SetDownloadDir(dir string) error {
	return s.configStore.Set(keyDownloadDir, dir)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}
