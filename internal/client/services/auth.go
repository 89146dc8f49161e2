// Package services contains the application services of the Hoaxify
// client: auth actions, profile operations, and hoax feed/composition.
// Each service wraps the remote gateway and, where needed, the session
// store.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoaxify/hoaxify-cli/internal/client/api"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
	"github.com/hoaxify/hoaxify-cli/internal/client/session"
	"github.com/hoaxify/hoaxify-cli/internal/logging"
)

// ErrLoginAfterSignup marks the second half of the signup chain
// failing: the account exists, but the automatic login did not go
// through. Match with errors.Is; the signup itself succeeded.
var ErrLoginAfterSignup = errors.New("login after signup failed")

// AuthService orchestrates signup/login/logout against the gateway and
// keeps the session store in sync.
type AuthService struct {
	gateway api.Gateway
	session *session.Store
	log     logging.Logger
}

func NewAuthService(gateway api.Gateway, session *session.Store, log logging.Logger) *AuthService {
	return &AuthService{gateway: gateway, session: session, log: log.With("component", "auth")}
}

// Login authenticates and, on success, installs the user as the current
// session (with the password retained for Basic auth on later calls).
// On failure the session store is not touched.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.gateway.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		s.log.Warn(ctx, "login failed", "username", username, "error", err)
		return models.User{}, err
	}

	user.Password = password
	user.IsLoggedIn = true
	if err := s.session.SetCurrent(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("persist session: %w", err)
	}

	s.log.Info(ctx, "logged in", "username", user.Username)
	return user, nil
}

// Signup creates the account and then logs in with the same
// credentials. The two calls are an explicit chain, not atomic: when
// signup succeeds but the login leg fails, the returned error wraps
// ErrLoginAfterSignup and the account still exists.
func (s *AuthService) Signup(ctx context.Context, req api.SignupRequest) (models.User, error) {
	if _, err := s.gateway.Signup(ctx, req); err != nil {
		s.log.Warn(ctx, "signup failed", "username", req.Username, "error", err)
		return models.User{}, err
	}
	s.log.Info(ctx, "signed up", "username", req.Username)

	user, err := s.Login(ctx, req.Username, req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrLoginAfterSignup, err)
	}
	return user, nil
}

// Logout clears the session; the next gateway call carries no
// credentials.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "logged out")
	return nil
}
