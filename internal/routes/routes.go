package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/FitClubBack/internal/config"
	"github.com/saeid-a/FitClubBack/internal/handlers"
	"github.com/saeid-a/FitClubBack/internal/middleware"
	"github.com/saeid-a/FitClubBack/internal/repository"
	"github.com/saeid-a/FitClubBack/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	authHandler := handlers.NewAuthHandler(db, userRepo, cfg.JWTSecret)
	profileService := services.NewProfileService(db, userRepo, profileRepo)
	profileHandler := handlers.NewProfileHandler(profileService)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	profile := api.Group("/profile", middleware.AuthRequired(cfg.JWTSecret))
	profile.Get("", profileHandler.GetProfile)
	profile.Put("", profileHandler.UpdateProfile)
}
