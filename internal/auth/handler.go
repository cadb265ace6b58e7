package auth

import (
	"errors"
	"log"
	"strings"

	"cordonbleu-backend/internal/config"
	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       uint            `json:"id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// POST /api/auth/register
// An admin account can only be registered while no admin exists yet.
func RegisterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Username = normalizeUsername(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
		}

		if body.Role == "" {
			body.Role = models.RoleUser
		}
		if !body.Role.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Role must be 'admin' or 'user'")
		}

		var existing int64
		if err := database.DB.Model(&models.User{}).Where("username = ?", body.Username).Count(&existing).Error; err != nil {
			log.Printf("register: user lookup failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Server error during registration")
		}
		if existing > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "User already exists")
		}

		if body.Role == models.RoleAdmin {
			var admins int64
			if err := database.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error; err != nil {
				log.Printf("register: admin count failed: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Server error during registration")
			}
			if admins > 0 {
				return fiber.NewError(fiber.StatusForbidden, "An admin already exists")
			}
		}

		hash, err := HashPassword(body.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Password could not be hashed")
		}

		user := models.User{
			Username:     body.Username,
			PasswordHash: hash,
			Role:         body.Role,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("register: create user failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Server error during registration")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User registered successfully",
			"user":    toUserResponse(&user),
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Username = normalizeUsername(body.Username)

		var user models.User
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("login: user lookup failed: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Server error during login")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}

		if !CheckPassword(user.PasswordHash, body.Password) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.JWTExpiresIn, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token could not be created")
		}

		return c.JSON(LoginResponse{
			Token: token,
			User:  toUserResponse(&user),
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, CurrentUserID(c)).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return c.JSON(toUserResponse(&user))
	}
}
