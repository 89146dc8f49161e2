// Package session holds the single authenticated-user record: an
// in-memory store with synchronous subscriber notification, backed by a
// durable repository that survives restarts.
package session

import (
	"context"

	"github.com/hoaxify/hoaxify-cli/internal/client/models"
)

// Repository persists the session record. Load returns (nil, nil) when
// no session is stored.
type Repository interface {
	Load(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, user models.User) error
	Delete(ctx context.Context) error
}
