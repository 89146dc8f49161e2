package services

import (
	"context"

	"github.com/hoaxify/hoaxify-cli/internal/client/api"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
	"github.com/hoaxify/hoaxify-cli/internal/client/session"
	"github.com/hoaxify/hoaxify-cli/internal/filex"
	"github.com/hoaxify/hoaxify-cli/internal/logging"
)

// UserService reads user profiles and submits profile updates.
type UserService struct {
	gateway api.Gateway
	session *session.Store
	log     logging.Logger
}

func NewUserService(gateway api.Gateway, session *session.Store, log logging.Logger) *UserService {
	return &UserService{gateway: gateway, session: session, log: log.With("component", "users")}
}

func (s *UserService) Get(ctx context.Context, username string) (models.User, error) {
	return s.gateway.GetUser(ctx, username)
}

// List fetches one page of users; the signature matches pager.FetchFunc.
func (s *UserService) List(ctx context.Context, page, size int) (models.Page[models.User], error) {
	return s.gateway.ListUsers(ctx, page, size)
}

// UpdateProfile submits a profile draft. A draft whose Image is an
// inline data URI (a freshly selected file) is sent as raw base64 with
// the framing prefix stripped; an unchanged stored filename is not
// re-uploaded. When the updated user is the current session user, the
// committed displayName/image propagate into the session store, with
// the password and login flag preserved.
func (s *UserService) UpdateProfile(ctx context.Context, draft models.User) (models.User, error) {
	upd := api.UserUpdate{DisplayName: draft.DisplayName}
	if filex.IsDataURI(draft.Image) {
		upd.Image = filex.StripDataURI(draft.Image)
	}

	updated, err := s.gateway.UpdateUser(ctx, draft.ID, upd)
	if err != nil {
		return models.User{}, err
	}

	if current := s.session.Current(); current != nil && current.ID == updated.ID {
		current.DisplayName = updated.DisplayName
		current.Image = updated.Image
		if err := s.session.SetCurrent(ctx, *current); err != nil {
			return updated, err
		}
		s.log.Info(ctx, "profile updated", "username", current.Username)
	}
	return updated, nil
}
