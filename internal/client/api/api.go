package api

import (
	"context"
	"time"

	"github.com/momento-app/momento/internal/client/models"
)

// Client is the transport-facing contract to the Momento backend. The session
// manager and feed store depend on this interface, never on the concrete HTTP
// implementation.
type Client interface {
	// Register creates a new account and returns the registered identity.
	Register(ctx context.Context, email, password string) (*models.User, error)

	// Login exchanges credentials for a session cookie. The credential itself
	// is carried by the client's cookie jar afterwards.
	Login(ctx context.Context, email, password string) error

	// Logout invalidates the server-side credential.
	Logout(ctx context.Context) error

	// CurrentUser probes the "who am I" endpoint using the ambient cookie.
	// Returns ErrUnauthorized when no valid credential is present (the guest
	// signal, not a fault).
	CurrentUser(ctx context.Context) (*models.User, error)

	// Feed fetches the post feed, latest first.
	Feed(ctx context.Context) ([]models.Post, error)

	// Upload sends an image plus optional caption as multipart form data.
	Upload(ctx context.Context, filename string, data []byte, caption string) error

	// DeletePost removes a post on the server. Requires ownership.
	DeletePost(ctx context.Context, postID string) error

	// SessionExpiry reports the expiry of the cookie-carried credential, when
	// one is present and carries a JWT exp claim.
	SessionExpiry() (time.Time, bool)

	// Close releases underlying transport resources.
	Close() error
}
