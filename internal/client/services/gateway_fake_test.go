package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/hoaxify/hoaxify-cli/internal/client/api"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
	"github.com/hoaxify/hoaxify-cli/internal/client/session"
	"github.com/hoaxify/hoaxify-cli/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakeGateway implements api.Gateway for unit tests; each operation
// returns the configured result and records its last arguments.
type fakeGateway struct {
	SignupRet models.User
	SignupErr error

	LoginRet models.User
	LoginErr error

	ListUsersRet models.Page[models.User]
	ListUsersErr error

	GetUserRet models.User
	GetUserErr error

	UpdateUserRet models.User
	UpdateUserErr error

	PostHoaxRet models.Hoax
	PostHoaxErr error

	ListHoaxesRet models.Page[models.Hoax]
	ListHoaxesErr error

	LastSignup     api.SignupRequest
	LastLogin      api.Credentials
	LastUpdateID   int64
	LastUpdate     api.UserUpdate
	LastContent    string
	LastListPage   int
	LastListSize   int
	LastFeedUser   string
	LoginCallCount int
}

func (f *fakeGateway) Signup(ctx context.Context, req api.SignupRequest) (models.User, error) {
	f.LastSignup = req
	return f.SignupRet, f.SignupErr
}

func (f *fakeGateway) Login(ctx context.Context, creds api.Credentials) (models.User, error) {
	f.LastLogin = creds
	f.LoginCallCount++
	return f.LoginRet, f.LoginErr
}

func (f *fakeGateway) ListUsers(ctx context.Context, page, size int) (models.Page[models.User], error) {
	f.LastListPage, f.LastListSize = page, size
	return f.ListUsersRet, f.ListUsersErr
}

func (f *fakeGateway) GetUser(ctx context.Context, username string) (models.User, error) {
	return f.GetUserRet, f.GetUserErr
}

func (f *fakeGateway) UpdateUser(ctx context.Context, id int64, upd api.UserUpdate) (models.User, error) {
	f.LastUpdateID, f.LastUpdate = id, upd
	return f.UpdateUserRet, f.UpdateUserErr
}

func (f *fakeGateway) PostHoax(ctx context.Context, content string) (models.Hoax, error) {
	f.LastContent = content
	return f.PostHoaxRet, f.PostHoaxErr
}

func (f *fakeGateway) ListHoaxes(ctx context.Context, page, size int) (models.Page[models.Hoax], error) {
	f.LastListPage, f.LastListSize = page, size
	return f.ListHoaxesRet, f.ListHoaxesErr
}

func (f *fakeGateway) ListUserHoaxes(ctx context.Context, username string, page, size int) (models.Page[models.Hoax], error) {
	f.LastFeedUser = username
	f.LastListPage, f.LastListSize = page, size
	return f.ListHoaxesRet, f.ListHoaxesErr
}

var svcDBSeq int

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	svcDBSeq++
	dsn := fmt.Sprintf("file:svcdb%d?mode=memory&cache=shared", svcDBSeq)
	db, err := session.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupSession(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(session.NewSQLiteRepository(setupDB(t)))
}

func testLogger() logging.Logger {
	return logging.NewDefault(testWriter{}, "error")
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }
