package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locale derives the request locale from the Accept-Language header. The
// handler prefers the locale inside the envelope; this is the fallback.
func Locale(defaultLocale string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locale := defaultLocale
		if header := c.Get(fiber.HeaderAcceptLanguage); header != "" {
			first := header
			if i := strings.IndexByte(first, ','); i >= 0 {
				first = first[:i]
			}
			if i := strings.IndexByte(first, ';'); i >= 0 {
				first = first[:i]
			}
			first = strings.TrimSpace(first)
			if first != "" && first != "*" {
				locale = first
			}
		}
		c.Locals("locale", locale)
		return c.Next()
	}
}
