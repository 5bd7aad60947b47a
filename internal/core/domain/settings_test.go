package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "http://localhost:8000", s.API.BaseURL)
	assert.Equal(t, 120*time.Second, s.API.Timeout)
	assert.InDelta(t, 2.0, s.API.RateLimit, 0)
	assert.Empty(t, s.API.Token)
	assert.Empty(t, s.Download.Dir)
}

func TestAPISettings_IsAuthenticated(t *testing.T) {
	assert.False(t, APISettings{}.IsAuthenticated())
	assert.True(t, APISettings{Token: "abc"}.IsAuthenticated())
}

func TestDefaultAppSettings_ReturnsCopy(t *testing.T) {
	a := DefaultAppSettings()
	a.API.BaseURL = "http://example.test"

	assert.Equal(t, DefaultAPIBaseURL, DefaultAppSettings().API.BaseURL)
}
