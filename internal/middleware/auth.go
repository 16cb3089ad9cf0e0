package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"caresync/hospital-api/internal/auth"
	"caresync/hospital-api/internal/models"
)

const (
	localUserID = "userId"
	localEmail  = "email"
)

// Protected verifies the bearer token and stores the caller's id and email in
// the request locals. It does no role check: any valid token passes, and
// doctor-vs-patient authorization is left to the handlers' own lookups.
func Protected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is missing")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Invalid authorization header format")
		}

		claims, err := auth.ParseToken(secret, parts[1])
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		id, err := uuid.Parse(claims.ID)
		if err != nil {
			return unauthorized(c, "Invalid token claims")
		}

		c.Locals(localUserID, id)
		c.Locals(localEmail, claims.Email)

		return c.Next()
	}
}

// UserID returns the authenticated caller's id set by Protected.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(localUserID).(uuid.UUID)
	return id, ok
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
		Success: false,
		Message: message,
	})
}
