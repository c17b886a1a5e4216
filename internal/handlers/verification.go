package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/apperr"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/config"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/email"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/email/templates"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/models"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/store"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/utils"
)

// VerificationHandler manages the email verification lifecycle: sending
// tokens, confirming them, and deleting abandoned unverified accounts.
type VerificationHandler struct {
	store  store.Store
	cfg    *config.Config
	mailer email.Mailer
}

// NewVerificationHandler constructs a VerificationHandler.
func NewVerificationHandler(st store.Store, cfg *config.Config, mailer email.Mailer) *VerificationHandler {
	return &VerificationHandler{store: st, cfg: cfg, mailer: mailer}
}

type sendVerificationRequest struct {
	Email string `json:"email"`
}

// SendVerification issues a fresh verification token and emails the verify
// and delete-account links. Any previously issued token stops working once
// the new one is stored.
func (h *VerificationHandler) SendVerification(c *fiber.Ctx) error {
	// Sweep abandoned unverified accounts before handing out new tokens.
	h.cleanupExpiredAccounts(c)

	var req sendVerificationRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return apperr.BadRequest(apperr.CodeValidation, "Email is required")
	}

	user, err := h.store.UserByEmail(c.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("User not found")
	}
	if err != nil {
		return apperr.Internal("Failed to send verification email", err)
	}

	if user.IsVerified() {
		return apperr.BadRequest(apperr.CodeAlreadyVerified, "Email already verified")
	}

	if user.VerificationTokenCreatedAt != nil &&
		time.Since(*user.VerificationTokenCreatedAt) < h.cfg.ResendCooldown {
		return apperr.TooManyRequests("Please wait a few minutes before requesting another email")
	}

	token := uuid.NewString()
	if err := h.store.RotateVerificationToken(c.Context(), req.Email, token, time.Now()); err != nil {
		return apperr.Internal("Failed to send verification email", err)
	}

	if err := sendVerificationEmail(c, h.cfg, h.mailer, req.Email, token); err != nil {
		// The rotated token stays valid, so a later resend can succeed.
		return apperr.New(fiber.StatusInternalServerError, apperr.CodeEmailSendFailed, "Failed to send email")
	}

	return c.JSON(fiber.Map{"message": "Verification email sent"})
}

// ConfirmVerification flips an unverified account to verified. The token row
// is locked for the duration of the transaction to serialize against
// concurrent confirm, delete, and cleanup calls on the same token.
func (h *VerificationHandler) ConfirmVerification(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return apperr.BadRequest(apperr.CodeValidation, "Token is required")
	}

	err := h.store.InTransaction(c.Context(), func(tx store.Store) error {
		user, err := tx.UserByTokenForUpdate(c.Context(), token)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.BadRequest(apperr.CodeInvalidToken, "Invalid or expired token")
		}
		if err != nil {
			return err
		}

		if user.IsVerified() {
			return apperr.BadRequest(apperr.CodeAlreadyVerified, "Email already verified")
		}

		if h.tokenExpired(user) {
			return apperr.BadRequest(apperr.CodeTokenExpired, "Token has expired")
		}

		return tx.MarkVerified(c.Context(), user.ID)
	})
	if err != nil {
		return asAppError(err, "Failed to verify email")
	}

	return c.JSON(fiber.Map{"message": "Email verified successfully"})
}

// DeleteAccount removes an unverified account and every dependent row. The
// whole cascade runs in one transaction under the token row lock; nothing
// is left half-deleted on failure.
func (h *VerificationHandler) DeleteAccount(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return apperr.BadRequest(apperr.CodeValidation, "Token is required")
	}

	err := h.store.InTransaction(c.Context(), func(tx store.Store) error {
		user, err := tx.UserByTokenForUpdate(c.Context(), token)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.BadRequest(apperr.CodeInvalidToken, "Invalid or expired token")
		}
		if err != nil {
			return err
		}

		if user.IsVerified() {
			return apperr.Forbidden(apperr.CodeCannotDeleteVerified,
				"Cannot delete verified accounts through this method")
		}

		if h.tokenExpired(user) {
			return apperr.BadRequest(apperr.CodeTokenExpired, "Token has expired")
		}

		return tx.DeleteUserCascade(c.Context(), user.ID)
	})
	if err != nil {
		return asAppError(err, "Failed to delete account")
	}

	return c.JSON(fiber.Map{"message": "Account successfully deleted"})
}

type getTokenRequest struct {
	Email string `json:"email"`
}

// GetToken mints a session JWT for an already-verified user.
func (h *VerificationHandler) GetToken(c *fiber.Ctx) error {
	var req getTokenRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return apperr.BadRequest(apperr.CodeValidation, "Email is required")
	}

	user, err := h.store.UserByEmail(c.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("User not found")
	}
	if err != nil {
		return apperr.Internal("Failed to fetch user", err)
	}

	if !user.IsVerified() {
		return apperr.Forbidden(apperr.CodeNotVerified, "Email not verified")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Username, user.Role, h.cfg.TokenExpires)
	if err != nil {
		return apperr.Internal("Failed to generate token", err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"user_id":             user.ID,
			"username":            user.Username,
			"verification_status": models.VerificationStatusVerified,
			"role":                user.Role,
		},
	})
}

type getVerifiedUserRequest struct {
	Token string `json:"token"`
}

// GetVerifiedUser reports the verification status of the account holding
// the given token.
func (h *VerificationHandler) GetVerifiedUser(c *fiber.Ctx) error {
	var req getVerifiedUserRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return apperr.BadRequest(apperr.CodeValidation, "Token is required")
	}

	user, err := h.store.UserByToken(c.Context(), req.Token)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("User not found or token expired")
	}
	if err != nil {
		return apperr.Internal("Failed to fetch user", err)
	}

	return c.JSON(fiber.Map{"verification_status": user.VerificationStatus})
}

// cleanupExpiredAccounts cascade-deletes unverified accounts whose token
// passed its TTL. Best effort: failures are logged, never surfaced to the
// request that triggered the sweep. Safe to run concurrently because every
// candidate row is locked before deletion.
func (h *VerificationHandler) cleanupExpiredAccounts(c *fiber.Ctx) {
	cutoff := time.Now().Add(-h.cfg.VerificationTTL)

	err := h.store.InTransaction(c.Context(), func(tx store.Store) error {
		expired, err := tx.ExpiredUnverifiedForUpdate(c.Context(), cutoff)
		if err != nil {
			return err
		}

		for _, user := range expired {
			if err := tx.DeleteUserCascade(c.Context(), user.ID); err != nil {
				return err
			}
		}

		if len(expired) > 0 {
			log.Printf("cleaned up %d expired unverified accounts", len(expired))
		}
		return nil
	})
	if err != nil {
		log.Printf("expired account cleanup failed: %v", err)
	}
}

func (h *VerificationHandler) tokenExpired(user *models.User) bool {
	if user.VerificationTokenCreatedAt == nil {
		return false
	}
	return time.Since(*user.VerificationTokenCreatedAt) > h.cfg.VerificationTTL
}

func sendVerificationEmail(c *fiber.Ctx, cfg *config.Config, mailer email.Mailer, to, token string) error {
	data := templates.VerificationData{
		VerifyURL: fmt.Sprintf("%s/verify-email?token=%s", cfg.FrontendOrigin, token),
		DeleteURL: fmt.Sprintf("%s/delete-account?token=%s", cfg.FrontendOrigin, token),
	}

	htmlBody, err := templates.RenderVerificationHTML(data)
	if err != nil {
		return err
	}

	return mailer.Send(c.Context(), to, templates.VerificationSubject,
		templates.RenderVerificationText(data), htmlBody)
}

// asAppError passes taxonomy errors through and wraps anything else as a
// 500 with the given client-facing message.
func asAppError(err error, message string) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperr.Internal(message, err)
}
