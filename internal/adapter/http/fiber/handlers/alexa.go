package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/genie-bridge/internal/domain"
	"github.com/seu-repo/genie-bridge/internal/ports"
	"github.com/seu-repo/genie-bridge/internal/service/bridge"
)

type AlexaHandler struct {
	bridge *bridge.Service
	auth   ports.AuthService
	log    *zap.Logger
}

func NewAlexaHandler(bridge *bridge.Service, auth ports.AuthService, log *zap.Logger) *AlexaHandler {
	return &AlexaHandler{
		bridge: bridge,
		auth:   auth,
		log:    log,
	}
}

// Handle processes one webhook turn and writes its single JSON response.
func (h *AlexaHandler) Handle(c *fiber.Ctx) error {
	var req domain.WebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	locale := req.Request.Locale
	if locale == "" {
		if fallback, ok := c.Locals("locale").(string); ok {
			locale = fallback
		}
	}

	user, _ := c.Locals("user").(*domain.User)
	if user == nil {
		user = h.auth.Anonymous()
	}

	resp, err := h.bridge.HandleTurn(c.Context(), user, &req, locale)
	if err != nil {
		// Status mapping happens in the error handler.
		return err
	}

	return c.JSON(resp)
}
