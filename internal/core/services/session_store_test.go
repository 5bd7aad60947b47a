package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/etis-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

func TestSessionStore_SetUser(t *testing.T) {
	persister := memory.NewSessionPersister()
	store := NewSessionStore(persister)

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Session())

	store.SetUser(&domain.Session{Username: "u1", Password: "p1", Terms: []int{1, 2, 3}})

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, []int{1, 2, 3}, store.Session().Terms)

	persisted, err := persister.Load()
	require.NoError(t, err)
	assert.Equal(t, "u1", persisted.Username)
}

func TestSessionStore_SessionIsACopy(t *testing.T) {
	store := NewSessionStore(nil)
	store.SetUser(&domain.Session{Username: "u1", Terms: []int{1}})

	s := store.Session()
	s.Terms[0] = 42
	s.Username = "other"

	assert.Equal(t, []int{1}, store.Session().Terms)
	assert.Equal(t, "u1", store.Session().Username)
}

func TestSessionStore_SetSelectedTerm(t *testing.T) {
	persister := memory.NewSessionPersister()
	store := NewSessionStore(persister)
	store.SetUser(&domain.Session{Username: "u1", Terms: []int{1, 2}})

	store.SetSelectedTerm("2")

	assert.Equal(t, "2", store.Session().SelectedTermOrAll())
	persisted, err := persister.Load()
	require.NoError(t, err)
	assert.Equal(t, "2", persisted.SelectedTermOrAll())

	store.SetSelectedTerm(domain.AllTerms)
	require.NotNil(t, store.Session().SelectedTerm)
	assert.Equal(t, domain.AllTerms, store.Session().SelectedTermOrAll())
}

func TestSessionStore_SetSelectedTerm_NoSession(t *testing.T) {
	persister := memory.NewSessionPersister()
	store := NewSessionStore(persister)

	store.SetSelectedTerm("1")

	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, 0, persister.Saves)
}

func TestSessionStore_SelectionHeldUntilLogin(t *testing.T) {
	persister := memory.NewSessionPersister()
	store := NewSessionStore(persister)

	store.SetSelectedTerm("2")
	store.SetUser(&domain.Session{Username: "u1", Terms: []int{1, 2}})

	assert.Equal(t, "2", store.Session().SelectedTermOrAll())
	persisted, err := persister.Load()
	require.NoError(t, err)
	assert.Equal(t, "2", persisted.SelectedTermOrAll())
}

func TestSessionStore_SelectionSurvivesDeleteUser(t *testing.T) {
	store := NewSessionStore(nil)
	store.SetUser(&domain.Session{Username: "u1", Terms: []int{1, 2, 3}})
	store.SetSelectedTerm("3")

	store.DeleteUser()
	store.SetUser(&domain.Session{Username: "u2", Terms: []int{1, 2, 3}})

	assert.Equal(t, "3", store.Session().SelectedTermOrAll())
}

func TestSessionStore_SetUser_KeepsOwnSelection(t *testing.T) {
	store := NewSessionStore(nil)
	store.SetSelectedTerm("1")

	own := "2"
	store.SetUser(&domain.Session{Username: "u1", Terms: []int{1, 2}, SelectedTerm: &own})

	assert.Equal(t, "2", store.Session().SelectedTermOrAll())
}

func TestSessionStore_DeleteUser(t *testing.T) {
	persister := memory.NewSessionPersister()
	store := NewSessionStore(persister)
	store.SetUser(&domain.Session{Username: "u1"})

	store.DeleteUser()

	assert.False(t, store.IsAuthenticated())
	persisted, err := persister.Load()
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestSessionStore_PersistFailureIsSwallowed(t *testing.T) {
	persister := memory.NewSessionPersister()
	persister.SaveErr = errors.New("read-only filesystem")
	store := NewSessionStore(persister)

	store.SetUser(&domain.Session{Username: "u1"})

	assert.True(t, store.IsAuthenticated())
}

func TestSessionStore_Restore(t *testing.T) {
	persister := memory.NewSessionPersister()
	term := "3"
	require.NoError(t, persister.Save(&domain.Session{Username: "u1", Terms: []int{3}, SelectedTerm: &term}))

	store := NewSessionStore(persister)
	require.NoError(t, store.Restore())

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "3", store.Session().SelectedTermOrAll())

	require.NoError(t, persister.Delete())
	require.NoError(t, store.Restore())
	assert.False(t, store.IsAuthenticated())
}

func TestSessionStore_NilPersister(t *testing.T) {
	store := NewSessionStore(nil)

	store.SetUser(&domain.Session{Username: "u1"})
	store.SetSelectedTerm("1")
	require.NoError(t, store.Restore())
	store.DeleteUser()

	assert.False(t, store.IsAuthenticated())
}
