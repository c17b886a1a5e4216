package handlers_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/models"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/store"
)

// fakeStore is an in-memory store.Store mirroring the semantics of the GORM
// implementation: idempotent wishlist inserts, no-op updates on missing
// rows, full cascade deletes.
type fakeStore struct {
	users        []*models.User
	products     []*models.Product
	images       []models.ProductImage
	entries      []*models.WishlistEntry
	messages     []models.Message
	participants []models.ConversationParticipant
	adminActions []models.AdminAction
	reviews      []models.Review
	reports      []models.ListingReport
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) InTransaction(ctx context.Context, fn func(store.Store) error) error {
	return fn(f)
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.findUser(func(u *models.User) bool { return u.Email == email })
}

func (f *fakeStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.findUser(func(u *models.User) bool { return u.Username == username })
}

func (f *fakeStore) UserByToken(ctx context.Context, token string) (*models.User, error) {
	return f.findUser(func(u *models.User) bool {
		return u.VerificationToken != nil && *u.VerificationToken == token
	})
}

func (f *fakeStore) UserByTokenForUpdate(ctx context.Context, token string) (*models.User, error) {
	return f.UserByToken(ctx, token)
}

func (f *fakeStore) ExpiredUnverifiedForUpdate(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	var expired []models.User
	for _, u := range f.users {
		if u.VerificationStatus == models.VerificationStatusUnverified &&
			u.VerificationTokenCreatedAt != nil &&
			u.VerificationTokenCreatedAt.Before(cutoff) {
			expired = append(expired, *u)
		}
	}
	return expired, nil
}

func (f *fakeStore) RotateVerificationToken(ctx context.Context, email, token string, at time.Time) error {
	for _, u := range f.users {
		if u.Email == email {
			t, ts := token, at
			u.VerificationToken = &t
			u.VerificationTokenCreatedAt = &ts
		}
	}
	return nil
}

func (f *fakeStore) MarkVerified(ctx context.Context, userID uuid.UUID) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.VerificationStatus = models.VerificationStatusVerified
			u.VerificationToken = nil
			u.VerificationTokenCreatedAt = nil
		}
	}
	return nil
}

func (f *fakeStore) DeleteUserCascade(ctx context.Context, userID uuid.UUID) error {
	f.entries = filterSlice(f.entries, func(e *models.WishlistEntry) bool { return e.UserID != userID })
	f.messages = filterSlice(f.messages, func(m models.Message) bool { return m.SenderID != userID })
	f.participants = filterSlice(f.participants, func(p models.ConversationParticipant) bool { return p.UserID != userID })
	f.adminActions = filterSlice(f.adminActions, func(a models.AdminAction) bool { return a.AdminID != userID })
	f.reviews = filterSlice(f.reviews, func(r models.Review) bool { return r.SellerID != userID })
	f.reports = filterSlice(f.reports, func(r models.ListingReport) bool { return r.ReporterID != userID })

	owned := map[uuid.UUID]bool{}
	for _, p := range f.products {
		if p.SellerID == userID {
			owned[p.ID] = true
		}
	}
	f.images = filterSlice(f.images, func(i models.ProductImage) bool { return !owned[i.ProductID] })
	f.products = filterSlice(f.products, func(p *models.Product) bool { return p.SellerID != userID })
	f.users = filterSlice(f.users, func(u *models.User) bool { return u.ID != userID })
	return nil
}

func (f *fakeStore) ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) AddWishlistEntry(ctx context.Context, userID, productID uuid.UUID) error {
	for _, e := range f.entries {
		if e.UserID == userID && e.ProductID == productID {
			return nil
		}
	}
	f.entries = append(f.entries, &models.WishlistEntry{UserID: userID, ProductID: productID})
	return nil
}

func (f *fakeStore) ActiveWishlist(ctx context.Context, userID uuid.UUID) ([]store.WishlistItem, error) {
	return f.wishlistItems(userID, func(e *models.WishlistEntry) bool { return !e.Archived }, true), nil
}

func (f *fakeStore) ArchivedWishlist(ctx context.Context, userID uuid.UUID) ([]store.WishlistItem, error) {
	return f.wishlistItems(userID, func(e *models.WishlistEntry) bool { return e.Archived }, true), nil
}

func (f *fakeStore) UnnotifiedSold(ctx context.Context, userID uuid.UUID) ([]store.WishlistItem, error) {
	return f.wishlistItems(userID, func(e *models.WishlistEntry) bool {
		p := f.product(e.ProductID)
		return p != nil && p.Status == models.ProductStatusSold && !e.Notified
	}, false), nil
}

func (f *fakeStore) MarkNotified(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) error {
	ids := map[uuid.UUID]bool{}
	for _, id := range productIDs {
		ids[id] = true
	}
	for _, e := range f.entries {
		if e.UserID == userID && ids[e.ProductID] {
			e.Notified = true
		}
	}
	return nil
}

func (f *fakeStore) ArchiveWishlistEntry(ctx context.Context, userID, productID uuid.UUID) error {
	for _, e := range f.entries {
		if e.UserID == userID && e.ProductID == productID {
			e.Archived = true
		}
	}
	return nil
}

func (f *fakeStore) findUser(match func(*models.User) bool) (*models.User, error) {
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) product(id uuid.UUID) *models.Product {
	for _, p := range f.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (f *fakeStore) firstImageURL(productID uuid.UUID) string {
	var candidates []models.ProductImage
	for _, img := range f.images {
		if img.ProductID == productID {
			candidates = append(candidates, img)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DisplayOrder < candidates[j].DisplayOrder
	})
	return candidates[0].URL
}

func (f *fakeStore) wishlistItems(userID uuid.UUID, match func(*models.WishlistEntry) bool, withStatus bool) []store.WishlistItem {
	items := []store.WishlistItem{}
	for _, e := range f.entries {
		if e.UserID != userID || !match(e) {
			continue
		}
		p := f.product(e.ProductID)
		if p == nil {
			continue
		}
		item := store.WishlistItem{
			ProductID: p.ID,
			Name:      p.Name,
			ImageURL:  f.firstImageURL(p.ID),
		}
		if withStatus {
			item.Status = p.Status
		}
		items = append(items, item)
	}
	return items
}

func filterSlice[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// fakeMailer records sent messages and can be told to fail.
type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, TextBody: textBody, HTMLBody: htmlBody})
	return nil
}
