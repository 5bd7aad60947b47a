package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/etis-cli/internal/adapters/driven/httpapi"
)

func TestLoginCmd_HasFlags(t *testing.T) {
	flag := loginCmd.Flags().Lookup("username")
	require.NotNil(t, flag)
	assert.Equal(t, "u", flag.Shorthand)

	require.NotNil(t, loginCmd.Flags().Lookup("force"))
}

func TestLoginCmd_PromptsForCredentials(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeWithInput("alice\nsecret\n", "login")

	require.NoError(t, err)
	assert.Contains(t, out, "Username: ")
	assert.Contains(t, out, "Logged in as alice")
	assert.Contains(t, out, "Terms: 1, 2, 3")

	session := env.sessions.Session()
	require.NotNil(t, session)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, "secret", session.Password)
	assert.Equal(t, []int{1, 2, 3}, session.Terms)
}

func TestLoginCmd_UsernameFlag(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeWithInput("pass word\n", "login", "-u", "bob")

	require.NoError(t, err)
	assert.NotContains(t, out, "Username: ")
	assert.Equal(t, "pass word", env.sessions.Session().Password)
}

func TestLoginCmd_AlreadyLoggedIn(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.login()

	out, _, err := execute("login")

	require.NoError(t, err)
	assert.Contains(t, out, "Already logged in as alice")
	assert.Equal(t, 0, env.api.loginCalls)
}

func TestLoginCmd_ForceReplacesSession(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.login()

	_, _, err := executeWithInput("other\n", "login", "--force", "-u", "bob")

	require.NoError(t, err)
	assert.Equal(t, 1, env.api.loginCalls)
	assert.Equal(t, "bob", env.sessions.Session().Username)
}

func TestLoginCmd_MissingPassword(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeWithInput("\n", "login", "-u", "alice")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "username and password are required")
	assert.Equal(t, 0, env.api.loginCalls)
	assert.False(t, env.sessions.IsAuthenticated())
}

func TestLoginCmd_ServerRejects(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.api.loginErr = &httpapi.APIError{StatusCode: 401, Detail: "Invalid credentials"}

	_, _, err := executeWithInput("wrong\n", "login", "-u", "alice")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")
	assert.True(t, httpapi.IsUnauthorized(err))
	assert.False(t, env.sessions.IsAuthenticated())
}

func TestLogoutCmd(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.login()
	env.charts.SetBarData(testResult().Bar)

	out, _, err := execute("logout")

	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")
	assert.False(t, env.sessions.IsAuthenticated())
	assert.False(t, env.charts.HasData())
}

func TestLogoutCmd_NotLoggedIn(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("logout")

	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestWhoamiCmd(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.login()
	env.sessions.SetSelectedTerm("2")

	out, _, err := execute("whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "User:          alice")
	assert.Contains(t, out, "Terms:         1, 2, 3")
	assert.Contains(t, out, "Selected term: 2")
}

func TestWhoamiCmd_NotLoggedIn(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}
