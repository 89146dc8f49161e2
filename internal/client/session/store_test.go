package session

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/hoaxify/hoaxify-cli/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var dbSeq int

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:session%d?mode=memory&cache=shared", dbSeq)
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(context.Background(), db))
	return db
}

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewSQLiteRepository(setupDB(t)))
}

func loggedInUser() models.User {
	return models.User{
		ID:          1,
		Username:    "user1",
		DisplayName: "display1",
		Image:       "profile1.png",
		Password:    "P4ssword",
		IsLoggedIn:  true,
	}
}

func TestStore_CurrentInitiallyNil(t *testing.T) {
	s := newStore(t)
	assert.Nil(t, s.Current())
}

func TestStore_SetCurrentAndCurrent(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.SetCurrent(context.Background(), loggedInUser()))

	got := s.Current()
	require.NotNil(t, got)
	assert.Equal(t, "user1", got.Username)
	assert.True(t, got.IsLoggedIn)
}

func TestStore_CurrentReturnsCopy(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetCurrent(context.Background(), loggedInUser()))

	got := s.Current()
	got.Username = "mutated"

	assert.Equal(t, "user1", s.Current().Username)
}

func TestStore_ClearRemovesSession(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetCurrent(context.Background(), loggedInUser()))

	require.NoError(t, s.Clear(context.Background()))
	assert.Nil(t, s.Current())
}

func TestStore_SubscribersNotifiedSynchronously(t *testing.T) {
	s := newStore(t)

	var seen []*models.User
	unsubscribe := s.Subscribe(func(u *models.User) { seen = append(seen, u) })

	require.NoError(t, s.SetCurrent(context.Background(), loggedInUser()))
	require.Len(t, seen, 1)
	require.NotNil(t, seen[0])
	assert.Equal(t, "user1", seen[0].Username)

	require.NoError(t, s.Clear(context.Background()))
	require.Len(t, seen, 2)
	assert.Nil(t, seen[1])

	unsubscribe()
	require.NoError(t, s.SetCurrent(context.Background(), loggedInUser()))
	assert.Len(t, seen, 2)
}

func TestStore_PersistsAcrossRestart(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	first := NewStore(repo)
	require.NoError(t, first.SetCurrent(context.Background(), loggedInUser()))

	// new store over the same database simulates a process restart
	second := NewStore(repo)
	require.NoError(t, second.Restore(context.Background()))

	got := second.Current()
	require.NotNil(t, got)
	assert.Equal(t, "user1", got.Username)
	assert.Equal(t, "P4ssword", got.Password)
	assert.True(t, got.IsLoggedIn)
}

func TestStore_RestoreWithEmptyDatabase(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Restore(context.Background()))
	assert.Nil(t, s.Current())
}

func TestStore_CredentialsFollowSession(t *testing.T) {
	s := newStore(t)

	_, ok := s.Credentials()
	assert.False(t, ok)

	require.NoError(t, s.SetCurrent(context.Background(), loggedInUser()))
	creds, ok := s.Credentials()
	require.True(t, ok)
	assert.Equal(t, "user1", creds.Username)
	assert.Equal(t, "P4ssword", creds.Password)

	require.NoError(t, s.Clear(context.Background()))
	_, ok = s.Credentials()
	assert.False(t, ok)
}

func TestStore_NoCredentialsWhenNotLoggedIn(t *testing.T) {
	s := newStore(t)
	u := loggedInUser()
	u.IsLoggedIn = false
	require.NoError(t, s.SetCurrent(context.Background(), u))

	_, ok := s.Credentials()
	assert.False(t, ok)
}
