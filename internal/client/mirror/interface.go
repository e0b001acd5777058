// Package mirror persists the client's last-known state (the authenticated
// user and the post feed) into a local SQLite database. The mirror is
// advisory: it reflects what the client last believed, not what the server
// has acknowledged. Snapshots are written wholesale under fixed keys; there
// is no incremental format.
package mirror

import (
	"context"

	"github.com/momento-app/momento/internal/client/models"
)

// Fixed storage keys. The "momento/" prefix namespaces the mirror rows so
// future components can share the table without collisions.
const (
	KeySession = "momento/session"
	KeyPosts   = "momento/posts"
)

// Repository is the durability contract consumed by the session manager and
// feed store. Implementations overwrite wholesale on every save. A stricter
// variant (e.g. one adding an outbox for server reconciliation) can be
// dropped in behind this interface without touching callers.
type Repository interface {
	// SaveUser stores the authenticated identity.
	SaveUser(ctx context.Context, u models.User) error

	// LoadUser returns the stored identity, or (nil, nil) when absent.
	LoadUser(ctx context.Context) (*models.User, error)

	// DeleteUser forgets the stored identity (logout).
	DeleteUser(ctx context.Context) error

	// SavePosts overwrites the stored feed snapshot.
	SavePosts(ctx context.Context, posts []models.Post) error

	// LoadPosts returns the stored feed, or (nil, nil) when absent.
	LoadPosts(ctx context.Context) ([]models.Post, error)

	// Clear wipes everything the mirror holds.
	Clear(ctx context.Context) error
}
