// Package api is the remote resource gateway of the Hoaxify client:
// one method per REST operation, no retries, no caching. Failures are
// classified into ErrUnavailable, *ValidationError, or *APIError.
package api

import (
	"context"

	"github.com/hoaxify/hoaxify-cli/internal/client/models"
)

// Credentials is a username:password pair used for Basic auth.
type Credentials struct {
	Username string
	Password string
}

// CredentialSource supplies the credentials attached to outgoing
// requests. It is consulted on every call, so a session change is
// visible to the very next request; there is no ambient header state
// to keep in sync.
type CredentialSource interface {
	Credentials() (Credentials, bool)
}

// SignupRequest is the body of the signup operation.
type SignupRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// UserUpdate is the body of the update-user operation. Image carries the
// raw base64 image content (data-URI framing already stripped) and is
// omitted when the avatar was not changed.
type UserUpdate struct {
	DisplayName string `json:"displayName"`
	Image       string `json:"image,omitempty"`
}

// Gateway maps each Hoaxify domain operation to one HTTP call.
type Gateway interface {
	Signup(ctx context.Context, req SignupRequest) (models.User, error)
	Login(ctx context.Context, creds Credentials) (models.User, error)
	ListUsers(ctx context.Context, page, size int) (models.Page[models.User], error)
	GetUser(ctx context.Context, username string) (models.User, error)
	UpdateUser(ctx context.Context, id int64, upd UserUpdate) (models.User, error)
	PostHoax(ctx context.Context, content string) (models.Hoax, error)
	ListHoaxes(ctx context.Context, page, size int) (models.Page[models.Hoax], error)
	ListUserHoaxes(ctx context.Context, username string, page, size int) (models.Page[models.Hoax], error)
}
