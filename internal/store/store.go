// Package store is the persistence boundary. Handlers depend on the Store
// interface only; the GORM implementation lives in gorm.go. Compound
// read-then-write sequences run through InTransaction so that row locks
// taken by the *ForUpdate lookups hold until commit.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/models"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("record not found")

// WishlistItem is a wishlist row joined with its product, as served to the
// client. ImageURL is the listing thumbnail and may be empty when the
// product has no images. Status is omitted on notification payloads.
type WishlistItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	Status    string    `json:"status,omitempty"`
}

// Store is the full persistence surface used by the HTTP handlers.
type Store interface {
	// InTransaction runs fn inside a single database transaction. Row locks
	// acquired by fn are held until the transaction commits or rolls back.
	// Any error from fn rolls the whole transaction back.
	InTransaction(ctx context.Context, fn func(Store) error) error

	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByToken(ctx context.Context, token string) (*models.User, error)
	// UserByTokenForUpdate locks the matched row (SELECT ... FOR UPDATE) to
	// serialize concurrent confirm/delete/cleanup on the same token.
	UserByTokenForUpdate(ctx context.Context, token string) (*models.User, error)
	// ExpiredUnverifiedForUpdate locks and returns every unverified user
	// whose token was created before cutoff.
	ExpiredUnverifiedForUpdate(ctx context.Context, cutoff time.Time) ([]models.User, error)
	RotateVerificationToken(ctx context.Context, email, token string, at time.Time) error
	MarkVerified(ctx context.Context, userID uuid.UUID) error
	// DeleteUserCascade removes every row depending on the user, in foreign
	// key order, and finally the user row itself.
	DeleteUserCascade(ctx context.Context, userID uuid.UUID) error

	// Products.
	ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)

	// Wishlist.
	AddWishlistEntry(ctx context.Context, userID, productID uuid.UUID) error
	ActiveWishlist(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error)
	ArchivedWishlist(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error)
	UnnotifiedSold(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error)
	MarkNotified(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) error
	ArchiveWishlistEntry(ctx context.Context, userID, productID uuid.UUID) error
}
