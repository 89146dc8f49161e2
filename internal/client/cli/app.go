// Package cli implements the interactive Hoaxify terminal client: a
// REPL dispatching to command handlers built on the client services.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/hoaxify/hoaxify-cli/internal/client/api"
	"github.com/hoaxify/hoaxify-cli/internal/client/config"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
	"github.com/hoaxify/hoaxify-cli/internal/client/services"
	"github.com/hoaxify/hoaxify-cli/internal/client/session"
	"github.com/hoaxify/hoaxify-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// Service surfaces the App depends on; satisfied by the concrete
// services and by test stubs.
type authService interface {
	Login(ctx context.Context, username, password string) (models.User, error)
	Signup(ctx context.Context, req api.SignupRequest) (models.User, error)
	Logout(ctx context.Context) error
}

type userService interface {
	Get(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context, page, size int) (models.Page[models.User], error)
	UpdateProfile(ctx context.Context, draft models.User) (models.User, error)
}

type hoaxService interface {
	Post(ctx context.Context, content string) (models.Hoax, error)
	Feed(ctx context.Context, page, size int) (models.Page[models.Hoax], error)
	UserFeed(username string) func(ctx context.Context, page, size int) (models.Page[models.Hoax], error)
}

type App struct {
	config  *config.Config
	session *session.Store
	auth    authService
	users   userService
	hoaxes  hoaxService
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp wires the client: local session database, session store,
// REST gateway (credentials sourced from the store), and services.
// A previously persisted session is restored before the first command.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := session.InitDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Error(ctx, "failed to initialize session database", "path", cfg.SessionDBPath, "error", err)
		return nil, err
	}

	store := session.NewStore(session.NewSQLiteRepository(db))
	if err := store.Restore(ctx); err != nil {
		return nil, err
	}
	if u := store.Current(); u != nil {
		log.Info(ctx, "session restored", "username", u.Username)
	}

	gateway := api.NewRESTClient(cfg.APIBaseURL, store, log, cfg.RequestTimeout)

	return &App{
		config:  cfg,
		session: store,
		auth:    services.NewAuthService(gateway, store, log),
		users:   services.NewUserService(gateway, store, log),
		hoaxes:  services.NewHoaxService(gateway, log),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	u := a.session.Current()
	return u != nil && u.IsLoggedIn
}

// status is the prompt label: the session username, or "guest".
func (a *App) status() string {
	if u := a.session.Current(); u != nil && u.IsLoggedIn {
		return u.Username
	}
	return "guest"
}
