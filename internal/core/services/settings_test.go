package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/etis-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

func newTestSettingsService(store *memory.ConfigStore, env map[string]string) *SettingsService {
	service := NewSettingsService(store)
	service.lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return service
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := newTestSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.API.BaseURL, settings.API.BaseURL)
	assert.Equal(t, defaults.API.Timeout, settings.API.Timeout)
	assert.Equal(t, defaults.API.RateLimit, settings.API.RateLimit)
	assert.Empty(t, settings.API.Token)
	assert.Empty(t, settings.Download.Dir)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "https://grades.example.edu/")
	_ = store.Set("api.timeout", 30)
	_ = store.Set("api.token", "tok")
	_ = store.Set("api.rate_limit", 0.5)
	_ = store.Set("download.dir", "/tmp/grades")

	service := newTestSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "https://grades.example.edu", settings.API.BaseURL)
	assert.Equal(t, 30*time.Second, settings.API.Timeout)
	assert.Equal(t, "tok", settings.API.Token)
	assert.True(t, settings.API.IsAuthenticated())
	assert.Equal(t, 0.5, settings.API.RateLimit)
	assert.Equal(t, "/tmp/grades", settings.Download.Dir)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.timeout", -5)
	_ = store.Set("api.rate_limit", "fast")

	service := newTestSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAPITimeout, settings.API.Timeout)
	assert.Equal(t, domain.DefaultRateLimit, settings.API.RateLimit)
}

func TestSettingsService_Get_EnvOverridesBaseURL(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "http://stored:8000")

	service := newTestSettingsService(store, map[string]string{EnvAPIBase: "http://env:9000/"})

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "http://env:9000", settings.API.BaseURL)
}

func TestSettingsService_Get_EmptyEnvIgnored(t *testing.T) {
	service := newTestSettingsService(memory.NewConfigStore(), map[string]string{EnvAPIBase: ""})

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAPIBaseURL, settings.API.BaseURL)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := newTestSettingsService(store, nil)

	in := domain.DefaultAppSettings()
	in.API.BaseURL = "http://grades.test"
	in.API.Timeout = 45 * time.Second
	in.API.RateLimit = 5
	in.Download.Dir = "/srv/out"

	require.NoError(t, service.Save(&in))

	out, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, in, *out)

	_, hasToken := store.Get("api.token")
	assert.False(t, hasToken)
}

func TestSettingsService_SetBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "http", input: "http://localhost:8000", want: "http://localhost:8000"},
		{name: "https trailing slash", input: "https://etis.example.edu/", want: "https://etis.example.edu"},
		{name: "no scheme", input: "localhost:8000", wantErr: true},
		{name: "ftp", input: "ftp://example.com", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := newTestSettingsService(store, nil)

			err := service.SetBaseURL(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.GetString("api.base_url"))
		})
	}
}

func TestSettingsService_SetDownloadDir(t *testing.T) {
	store := memory.NewConfigStore()
	service := newTestSettingsService(store, nil)

	require.NoError(t, service.SetDownloadDir("/home/u/grades"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "/home/u/grades", settings.Download.Dir)
}

func TestSettingsService_SetToken(t *testing.T) {
	store := memory.NewConfigStore()
	service := newTestSettingsService(store, nil)

	require.NoError(t, service.SetToken("  tok-123456789  "))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-123456789", settings.API.Token)
	assert.True(t, settings.API.IsAuthenticated())

	assert.ErrorIs(t, service.SetToken("   "), domain.ErrInvalidInput)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
