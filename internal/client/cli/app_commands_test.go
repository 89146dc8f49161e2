package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hoaxify/hoaxify-cli/internal/client/api"
	"github.com/hoaxify/hoaxify-cli/internal/client/config"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
	"github.com/hoaxify/hoaxify-cli/internal/client/session"
	"github.com/stretchr/testify/require"
)

type fakeUserSvc struct {
	getRet models.User
	getErr error

	listRet models.Page[models.User]
	listErr error

	updateDraft models.User
	updateCalls int
	updateRet   models.User
	updateErrs  []error
}

func (f *fakeUserSvc) Get(_ context.Context, username string) (models.User, error) {
	return f.getRet, f.getErr
}
func (f *fakeUserSvc) List(_ context.Context, page, size int) (models.Page[models.User], error) {
	return f.listRet, f.listErr
}
func (f *fakeUserSvc) UpdateProfile(_ context.Context, draft models.User) (models.User, error) {
	f.updateDraft = draft
	var err error
	if f.updateCalls < len(f.updateErrs) {
		err = f.updateErrs[f.updateCalls]
	}
	f.updateCalls++
	if err != nil {
		return models.User{}, err
	}
	return f.updateRet, nil
}

type fakeHoaxSvc struct {
	postContent string
	postCalls   int
	postRet     models.Hoax
	postErrs    []error

	feedRet models.Page[models.Hoax]
	feedErr error

	userFeedName string
}

func (f *fakeHoaxSvc) Post(_ context.Context, content string) (models.Hoax, error) {
	f.postContent = content
	var err error
	if f.postCalls < len(f.postErrs) {
		err = f.postErrs[f.postCalls]
	}
	f.postCalls++
	if err != nil {
		return models.Hoax{}, err
	}
	return f.postRet, nil
}
func (f *fakeHoaxSvc) Feed(_ context.Context, page, size int) (models.Page[models.Hoax], error) {
	return f.feedRet, f.feedErr
}
func (f *fakeHoaxSvc) UserFeed(username string) func(ctx context.Context, page, size int) (models.Page[models.Hoax], error) {
	f.userFeedName = username
	return f.Feed
}

var cliDBSeq int

func setupStore(t *testing.T) *session.Store {
	t.Helper()
	cliDBSeq++
	dsn := fmt.Sprintf("file:clidb%d?mode=memory&cache=shared", cliDBSeq)
	db, err := session.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewStore(session.NewSQLiteRepository(db))
}

func newTestApp(t *testing.T, input string) (*App, *fakeUserSvc, *fakeHoaxSvc, *bytes.Buffer) {
	t.Helper()
	users := &fakeUserSvc{}
	hoaxes := &fakeHoaxSvc{}
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	a := &App{
		config:  cfg,
		session: setupStore(t),
		users:   users,
		hoaxes:  hoaxes,
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     out,
	}
	return a, users, hoaxes, out
}

func loginAs(t *testing.T, a *App, u models.User) {
	t.Helper()
	u.IsLoggedIn = true
	require.NoError(t, a.session.SetCurrent(context.Background(), u))
}

func TestUsers_SinglePage(t *testing.T) {
	a, users, _, out := newTestApp(t, "")
	users.listRet = models.Page[models.User]{
		Content: []models.User{
			{ID: 1, Username: "user1", DisplayName: "display1"},
			{ID: 2, Username: "user2", DisplayName: "display2"},
		},
		Number: 0, Size: 3, First: true, Last: true, TotalPages: 1,
	}

	require.NoError(t, a.Users(context.Background()))

	got := out.String()
	require.Contains(t, got, "display1 (@user1)")
	require.Contains(t, got, "display2 (@user2)")
	require.Contains(t, got, "page 1 of 1")
}

func TestUser_ProfileWithHoaxes(t *testing.T) {
	a, users, hoaxes, out := newTestApp(t, "")
	users.getRet = models.User{ID: 1, Username: "user1", DisplayName: "display1"}
	hoaxes.feedRet = models.Page[models.Hoax]{
		Content: []models.Hoax{
			{ID: 9, Content: "latest hoax content", User: models.User{Username: "user1", DisplayName: "display1"}},
		},
		First: true, Last: true, TotalPages: 1,
	}

	require.NoError(t, a.User(context.Background(), "user1"))

	require.Equal(t, "user1", hoaxes.userFeedName)
	require.Contains(t, out.String(), "display1 (@user1)")
	require.Contains(t, out.String(), "latest hoax content")
}

func TestUser_NotFound(t *testing.T) {
	a, users, _, out := newTestApp(t, "")
	users.getErr = &api.APIError{Status: 404, Message: "User not found"}

	require.NoError(t, a.User(context.Background(), "ghost"))
	require.Contains(t, out.String(), "User not found")
}

func TestMyHoaxes_RequiresLogin(t *testing.T) {
	a, _, hoaxes, out := newTestApp(t, "")

	require.NoError(t, a.MyHoaxes(context.Background()))
	require.Contains(t, out.String(), "Not logged in.")
	require.Empty(t, hoaxes.userFeedName)
}

func TestPost_Success(t *testing.T) {
	a, _, hoaxes, out := newTestApp(t, "My very first hoax today\n\n")
	loginAs(t, a, models.User{ID: 1, Username: "user1"})
	hoaxes.postRet = models.Hoax{ID: 1, Content: "My very first hoax today"}

	require.NoError(t, a.Post(context.Background()))
	require.Equal(t, "My very first hoax today", hoaxes.postContent)
	require.Contains(t, out.String(), "Hoaxified!")
}

func TestPost_EmptyInputCancels(t *testing.T) {
	a, _, hoaxes, out := newTestApp(t, "\n")
	loginAs(t, a, models.User{ID: 1, Username: "user1"})

	require.NoError(t, a.Post(context.Background()))
	require.Zero(t, hoaxes.postCalls)
	require.Contains(t, out.String(), "Cancelled.")
}

func TestPost_ValidationRetry(t *testing.T) {
	a, _, hoaxes, out := newTestApp(t, "short\n\nnow this one is long enough\n\n")
	loginAs(t, a, models.User{ID: 1, Username: "user1"})
	hoaxes.postErrs = []error{&api.ValidationError{
		Message: "Validation error",
		Fields:  map[string]string{"content": "Hoax must be at least 10 characters long"},
	}}
	hoaxes.postRet = models.Hoax{ID: 1}

	require.NoError(t, a.Post(context.Background()))
	require.Equal(t, 2, hoaxes.postCalls)
	require.Equal(t, "now this one is long enough", hoaxes.postContent)
	require.Contains(t, out.String(), "at least 10 characters")
	require.Contains(t, out.String(), "Hoaxified!")
}

func TestPost_RequiresLogin(t *testing.T) {
	a, _, hoaxes, out := newTestApp(t, "irrelevant\n\n")

	require.NoError(t, a.Post(context.Background()))
	require.Zero(t, hoaxes.postCalls)
	require.Contains(t, out.String(), "Log in to post.")
}

func TestProfile_NotLoggedIn(t *testing.T) {
	a, _, _, out := newTestApp(t, "")
	require.NoError(t, a.Profile(context.Background()))
	require.Contains(t, out.String(), "Not logged in.")
}

// minimal 1x1 PNG, same fixture the image helpers are tested with
var avatarPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func writeAvatar(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "new-avatar.png")
	require.NoError(t, os.WriteFile(path, avatarPNG, 0o600))
	return path
}

func TestEditProfile_CancelRestoresAvatar(t *testing.T) {
	path := writeAvatar(t)
	a, users, _, out := newTestApp(t, "image "+path+"\ncancel\n")
	loginAs(t, a, models.User{ID: 1, Username: "user1", DisplayName: "display1", Image: "profile1.png"})

	require.NoError(t, a.EditProfile(context.Background()))

	require.Zero(t, users.updateCalls)
	require.Contains(t, out.String(), "Changes discarded.")
	require.Equal(t, "profile1.png", a.session.Current().Image)
}

func TestEditProfile_SaveSubmitsDraft(t *testing.T) {
	a, users, _, out := newTestApp(t, "name New Name\nsave\n")
	loginAs(t, a, models.User{ID: 1, Username: "user1", DisplayName: "display1"})
	users.updateRet = models.User{ID: 1, Username: "user1", DisplayName: "New Name"}

	require.NoError(t, a.EditProfile(context.Background()))

	require.Equal(t, 1, users.updateCalls)
	require.Equal(t, "New Name", users.updateDraft.DisplayName)
	require.Contains(t, out.String(), "Profile updated.")
}

func TestEditProfile_ValidationKeepsEditing(t *testing.T) {
	a, users, _, out := newTestApp(t, "name abc\nsave\nname Valid Name\nsave\n")
	loginAs(t, a, models.User{ID: 1, Username: "user1", DisplayName: "display1"})
	users.updateErrs = []error{&api.ValidationError{
		Message: "Validation error",
		Fields:  map[string]string{"displayName": "It must have minimum 4 and maximum 255 characters"},
	}}
	users.updateRet = models.User{ID: 1, Username: "user1", DisplayName: "Valid Name"}

	require.NoError(t, a.EditProfile(context.Background()))

	require.Equal(t, 2, users.updateCalls)
	require.Equal(t, "Valid Name", users.updateDraft.DisplayName)
	require.Contains(t, out.String(), "minimum 4 and maximum 255")
	require.Contains(t, out.String(), "Profile updated.")
}

func TestEditProfile_RequiresLogin(t *testing.T) {
	a, users, _, out := newTestApp(t, "")
	require.NoError(t, a.EditProfile(context.Background()))
	require.Zero(t, users.updateCalls)
	require.Contains(t, out.String(), "Log in to edit your profile.")
}
