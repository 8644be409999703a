package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/genie-bridge/internal/domain"
	"github.com/seu-repo/genie-bridge/internal/ports"
)

// Authenticate resolves the requesting user. The platform forwards the
// linked account's bearer token inside the envelope
// (session.user.accessToken); a plain Authorization header also works.
// Requests without a credential proceed as the anonymous user — account
// linking is optional for public skills.
func Authenticate(service ports.AuthService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			var req domain.WebhookRequest
			if err := c.BodyParser(&req); err == nil && req.Session.User != nil {
				token = req.Session.User.AccessToken
			}
		}

		if token == "" {
			c.Locals("user", service.Anonymous())
			return c.Next()
		}

		user, err := service.ValidateToken(c.Context(), token)
		if err != nil {
			log.Warn("Rejected invalid access token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
