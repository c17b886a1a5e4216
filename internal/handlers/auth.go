package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/apperr"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/config"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/email"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/models"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/store"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/utils"
)

// AuthHandler bundles dependencies for account registration and login.
type AuthHandler struct {
	store  store.Store
	cfg    *config.Config
	mailer email.Mailer
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(st store.Store, cfg *config.Config, mailer email.Mailer) *AuthHandler {
	return &AuthHandler{store: st, cfg: cfg, mailer: mailer}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new unverified account and emails its verification link.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(apperr.CodeValidation, "invalid request body")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperr.BadRequest(apperr.CodeValidation, "missing required fields")
	}

	if _, err := h.store.UserByUsername(c.Context(), req.Username); err == nil {
		return apperr.New(fiber.StatusConflict, apperr.CodeConflict, "username already taken")
	} else if !errors.Is(err, store.ErrNotFound) {
		return apperr.Internal("Failed to register", err)
	}

	if _, err := h.store.UserByEmail(c.Context(), req.Email); err == nil {
		return apperr.New(fiber.StatusConflict, apperr.CodeConflict, "email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return apperr.Internal("Failed to register", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return apperr.Internal("Failed to register", err)
	}

	token := uuid.NewString()
	now := time.Now()
	user := models.User{
		Username:                   req.Username,
		Email:                      req.Email,
		PasswordHash:               passwordHash,
		Role:                       "user",
		VerificationStatus:         models.VerificationStatusUnverified,
		VerificationToken:          &token,
		VerificationTokenCreatedAt: &now,
	}

	if err := h.store.CreateUser(c.Context(), &user); err != nil {
		return apperr.Internal("Failed to register", err)
	}

	// The account is usable for resend even when this first email fails.
	if err := sendVerificationEmail(c, h.cfg, h.mailer, req.Email, token); err != nil {
		log.Printf("verification email to %s failed: %v", req.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered. Please check your email to verify your account.",
		"user": fiber.Map{
			"user_id":             user.ID,
			"username":            user.Username,
			"verification_status": user.VerificationStatus,
		},
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a verified user and returns a session JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(apperr.CodeValidation, "invalid request body")
	}

	user, err := h.store.UserByUsername(c.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.New(fiber.StatusUnauthorized, apperr.CodeUnauthorized, "invalid credentials")
	}
	if err != nil {
		return apperr.Internal("Failed to log in", err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return apperr.New(fiber.StatusUnauthorized, apperr.CodeUnauthorized, "invalid credentials")
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
			"user_id":  user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
