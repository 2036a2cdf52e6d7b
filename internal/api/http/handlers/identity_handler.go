package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sharath2004-tech/odoo-sub001/internal/api/dto"
	"github.com/sharath2004-tech/odoo-sub001/internal/auth"
	apperrors "github.com/sharath2004-tech/odoo-sub001/pkg/util/errorutil"
)

// IdentityHandler exposes the authenticated identity to clients.
type IdentityHandler struct{}

// NewIdentityHandler constructs handler.
func NewIdentityHandler() *IdentityHandler {
	return &IdentityHandler{}
}

// Me handles GET /api/me.
func (h *IdentityHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}
	return c.JSON(fiber.Map{"data": dto.NewIdentityResponse(identity)})
}

// Access returns a handler confirming the caller passed the policy guarding scope.
func (h *IdentityHandler) Access(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated()
		}
		return c.JSON(fiber.Map{"data": dto.AccessResponse{
			Scope:    scope,
			Granted:  true,
			Identity: dto.NewIdentityResponse(identity),
		}})
	}
}
