// Package store persists users and chat history. Generated climate data is
// never stored; it is recomputed on demand.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/climate-intel/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = eris.New("store: not found")

// Store defines the persistence interface for the platform.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetUserByIdentifier looks a user up by email or phone; pass the one
	// that is set and leave the other empty.
	GetUserByIdentifier(ctx context.Context, email, phone string) (*model.User, error)
	// MarkUserVerified flips is_verified and clears the stored OTP.
	MarkUserVerified(ctx context.Context, id string) error
	UpdateUserLanguage(ctx context.Context, id, language string) error

	// Chat history
	InsertChat(ctx context.Context, rec *model.ChatRecord) error
	ListChatHistory(ctx context.Context, userID string, limit int) ([]model.ChatRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
