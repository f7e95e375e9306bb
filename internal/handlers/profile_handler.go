package handlers

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitClubBack/internal/models"
	"github.com/saeid-a/FitClubBack/internal/services"
)

type profileService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, *models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, input services.UpdateProfileInput) error
}

type ProfileHandler struct {
	profileService profileService
}

func NewProfileHandler(service profileService) *ProfileHandler {
	return &ProfileHandler{profileService: service}
}

type userPatchRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type updateProfileRequest struct {
	User    *userPatchRequest  `json:"user"`
	Profile map[string]*string `json:"profile"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := claimedUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, profile, err := h.profileService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	// A user without a profile row still gets a well-formed response.
	if profile == nil {
		return c.JSON(fiber.Map{
			"user":    publicUser(user),
			"profile": fiber.Map{},
		})
	}

	return c.JSON(fiber.Map{
		"user":    publicUser(user),
		"profile": profile,
	})
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := claimedUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	input := services.UpdateProfileInput{Profile: req.Profile}
	if req.User != nil {
		patch := services.UserPatch{
			Name:  req.User.Name,
			Phone: req.User.Phone,
		}
		if req.User.Email != nil {
			parsedEmail, err := mail.ParseAddress(strings.TrimSpace(*req.User.Email))
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
			}
			email := strings.ToLower(parsedEmail.Address)
			patch.Email = &email
		}
		if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name cannot be empty"})
		}
		input.User = &patch
	}

	if err := h.profileService.UpdateProfile(c.Context(), userID, input); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already in use"})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"message": "Profile updated"})
}

func claimedUserID(c *fiber.Ctx) (int64, error) {
	userID, ok := c.Locals("user_id").(int64)
	if !ok {
		return 0, errors.New("missing user id claim")
	}
	return userID, nil
}
