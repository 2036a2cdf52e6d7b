package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/sharath2004-tech/odoo-sub001/internal/domain"
)

const identityKey = "auth_identity"

type identityCtxKey struct{}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFromCtx retrieves the identity bound to a standard context.
func IdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return identity, ok
}

// IdentityFromContext retrieves the authenticated identity for the current request.
// Absence means the request is not authenticated.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

// bindIdentity exposes identity to fiber handlers and to code holding only the user context.
func bindIdentity(c *fiber.Ctx, identity domain.Identity) {
	c.Locals(identityKey, identity)
	c.SetUserContext(WithIdentity(c.UserContext(), identity))
}
