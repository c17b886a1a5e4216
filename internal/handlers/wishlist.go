package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/apperr"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/middleware"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/models"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/store"
)

// WishlistHandler manages product bookmarks for authenticated users.
type WishlistHandler struct {
	store store.Store
}

// NewWishlistHandler constructs a WishlistHandler.
func NewWishlistHandler(st store.Store) *WishlistHandler {
	return &WishlistHandler{store: st}
}

type addWishlistRequest struct {
	ProductID string `json:"product_id"`
}

// Add bookmarks an approved product. Adding an already-bookmarked product
// is a silent no-op.
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req addWishlistRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return apperr.BadRequest(apperr.CodeValidation, "Missing product_id")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return apperr.BadRequest(apperr.CodeValidation, "Invalid product_id")
	}

	product, err := h.store.ProductByID(c.Context(), productID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Product not found")
	}
	if err != nil {
		return apperr.Internal("Failed to add item to wishlist", err)
	}

	if product.ApprovalStatus != models.ApprovalStatusApproved {
		return apperr.BadRequest(apperr.CodeNotApproved, "Can only bookmark approved products")
	}

	if err := h.store.AddWishlistEntry(c.Context(), userID, productID); err != nil {
		return apperr.Internal("Failed to add item to wishlist", err)
	}

	return c.JSON(fiber.Map{"message": "Added to wishlist"})
}

// List returns the user's non-archived wishlist entries.
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	items, err := h.store.ActiveWishlist(c.Context(), userID)
	if err != nil {
		return apperr.Internal("Failed to fetch wishlist", err)
	}

	return c.JSON(items)
}

// Notifications returns wishlist entries whose product has sold since the
// user last looked, marking them notified in the same transaction so a
// repeat call comes back empty.
func (h *WishlistHandler) Notifications(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var items []store.WishlistItem
	err := h.store.InTransaction(c.Context(), func(tx store.Store) error {
		var err error
		items, err = tx.UnnotifiedSold(c.Context(), userID)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			return nil
		}

		productIDs := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			productIDs = append(productIDs, item.ProductID)
		}
		return tx.MarkNotified(c.Context(), userID, productIDs)
	})
	if err != nil {
		return apperr.Internal("Failed to fetch notifications", err)
	}

	return c.JSON(items)
}

// Archive hides a wishlist entry. Archiving a pair that does not exist
// still succeeds and changes nothing.
func (h *WishlistHandler) Archive(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return apperr.BadRequest(apperr.CodeValidation, "Invalid product_id")
	}

	if err := h.store.ArchiveWishlistEntry(c.Context(), userID, productID); err != nil {
		return apperr.Internal("Failed to archive item", err)
	}

	return c.JSON(fiber.Map{"message": "Wishlist item archived"})
}

// Archived returns the user's archived wishlist entries.
func (h *WishlistHandler) Archived(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	items, err := h.store.ArchivedWishlist(c.Context(), userID)
	if err != nil {
		return apperr.Internal("Failed to fetch archived wishlist", err)
	}

	return c.JSON(items)
}
