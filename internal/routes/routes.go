package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/config"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/email"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/handlers"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/middleware"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, st store.Store, cfg *config.Config, mailer email.Mailer) {
	authHandler := handlers.NewAuthHandler(st, cfg, mailer)
	verificationHandler := handlers.NewVerificationHandler(st, cfg, mailer)
	wishlistHandler := handlers.NewWishlistHandler(st)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Gator Market backend is live!"})
	})

	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	verify := app.Group("/verify")
	verify.Post("/send", verificationHandler.SendVerification)
	verify.Get("/confirm", verificationHandler.ConfirmVerification)
	verify.Post("/get-token", verificationHandler.GetToken)
	verify.Post("/get-verified-user", verificationHandler.GetVerifiedUser)
	verify.Get("/delete-account", verificationHandler.DeleteAccount)

	wishlist := app.Group("/wishlist", middleware.AuthMiddleware(cfg))
	wishlist.Post("/add", wishlistHandler.Add)
	wishlist.Get("/user", wishlistHandler.List)
	wishlist.Get("/notifications", wishlistHandler.Notifications)
	wishlist.Put("/archive/:product_id", wishlistHandler.Archive)
	wishlist.Get("/archived", wishlistHandler.Archived)
}
