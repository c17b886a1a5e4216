package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/models"
)

// Gorm implements Store on top of a *gorm.DB.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps an open gorm connection.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// InTransaction runs fn against a Store bound to a single transaction.
func (s *Gorm) InTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx})
	})
}

func (s *Gorm) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Gorm) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.firstUser(s.db.WithContext(ctx).Where("email = ?", email))
}

func (s *Gorm) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.firstUser(s.db.WithContext(ctx).Where("username = ?", username))
}

func (s *Gorm) UserByToken(ctx context.Context, token string) (*models.User, error) {
	return s.firstUser(s.db.WithContext(ctx).Where("verification_token = ?", token))
}

func (s *Gorm) UserByTokenForUpdate(ctx context.Context, token string) (*models.User, error) {
	return s.firstUser(s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("verification_token = ?", token))
}

func (s *Gorm) ExpiredUnverifiedForUpdate(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("verification_status = ? AND verification_token_created_at < ?",
			models.VerificationStatusUnverified, cutoff).
		Find(&users).Error
	return users, err
}

func (s *Gorm) RotateVerificationToken(ctx context.Context, email, token string, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"verification_token":            token,
			"verification_token_created_at": at,
		}).Error
}

func (s *Gorm) MarkVerified(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"verification_status":           models.VerificationStatusVerified,
			"verification_token":            nil,
			"verification_token_created_at": nil,
		}).Error
}

// DeleteUserCascade clears dependent tables in foreign key order before
// removing the user row. Callers must run it inside InTransaction.
func (s *Gorm) DeleteUserCascade(ctx context.Context, userID uuid.UUID) error {
	tx := s.db.WithContext(ctx)

	ownedProducts := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.Product{}).Select("id").Where("seller_id = ?", userID)

	steps := []func() *gorm.DB{
		func() *gorm.DB { return tx.Where("user_id = ?", userID).Delete(&models.WishlistEntry{}) },
		func() *gorm.DB { return tx.Where("sender_id = ?", userID).Delete(&models.Message{}) },
		func() *gorm.DB { return tx.Where("user_id = ?", userID).Delete(&models.ConversationParticipant{}) },
		func() *gorm.DB { return tx.Where("admin_id = ?", userID).Delete(&models.AdminAction{}) },
		func() *gorm.DB { return tx.Where("seller_id = ?", userID).Delete(&models.Review{}) },
		func() *gorm.DB { return tx.Where("reporter_id = ?", userID).Delete(&models.ListingReport{}) },
		func() *gorm.DB { return tx.Where("product_id IN (?)", ownedProducts).Delete(&models.ProductImage{}) },
		func() *gorm.DB { return tx.Where("seller_id = ?", userID).Delete(&models.Product{}) },
		func() *gorm.DB { return tx.Where("id = ?", userID).Delete(&models.User{}) },
	}

	for _, step := range steps {
		if err := step().Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Gorm) ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// AddWishlistEntry inserts the pair, silently ignoring duplicates.
func (s *Gorm) AddWishlistEntry(ctx context.Context, userID, productID uuid.UUID) error {
	entry := models.WishlistEntry{UserID: userID, ProductID: productID}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
}

// Correlated subquery picking the listing thumbnail.
const firstImageSelect = `(SELECT pi.url FROM product_images pi
	WHERE pi.product_id = p.id
	ORDER BY pi.display_order ASC, pi.created_at ASC LIMIT 1)`

func (s *Gorm) ActiveWishlist(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error) {
	return s.wishlistByArchived(ctx, userID, false)
}

func (s *Gorm) ArchivedWishlist(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error) {
	return s.wishlistByArchived(ctx, userID, true)
}

func (s *Gorm) wishlistByArchived(ctx context.Context, userID uuid.UUID, archived bool) ([]WishlistItem, error) {
	items := []WishlistItem{}
	err := s.db.WithContext(ctx).
		Table("wishlist_entries AS w").
		Select("p.id AS product_id, p.name, "+firstImageSelect+" AS image_url, p.status").
		Joins("JOIN products p ON p.id = w.product_id").
		Where("w.user_id = ? AND w.archived = ?", userID, archived).
		Scan(&items).Error
	return items, err
}

func (s *Gorm) UnnotifiedSold(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error) {
	items := []WishlistItem{}
	err := s.db.WithContext(ctx).
		Table("wishlist_entries AS w").
		Select("p.id AS product_id, p.name, "+firstImageSelect+" AS image_url").
		Joins("JOIN products p ON p.id = w.product_id").
		Where("w.user_id = ? AND p.status = ? AND w.notified = ?",
			userID, models.ProductStatusSold, false).
		Scan(&items).Error
	return items, err
}

func (s *Gorm) MarkNotified(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&models.WishlistEntry{}).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Update("notified", true).Error
}

// ArchiveWishlistEntry flips archived on; updating a missing pair is a no-op.
func (s *Gorm) ArchiveWishlistEntry(ctx context.Context, userID, productID uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.WishlistEntry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("archived", true).Error
}

func (s *Gorm) firstUser(tx *gorm.DB) (*models.User, error) {
	var user models.User
	err := tx.First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
