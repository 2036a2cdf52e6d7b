package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sharath2004-tech/odoo-sub001/internal/domain"
	"github.com/sharath2004-tech/odoo-sub001/internal/events"
	"github.com/sharath2004-tech/odoo-sub001/internal/observability"
	apperrors "github.com/sharath2004-tech/odoo-sub001/pkg/util/errorutil"
)

// AuthMiddleware authenticates bearer tokens against the live account store
// and enforces per-route role policies.
type AuthMiddleware struct {
	tokens        *TokenManager
	resolver      *Resolver
	logger        *zap.Logger
	events        events.Dispatcher
	discloseRoles bool
}

// MiddlewareOption customizes an AuthMiddleware.
type MiddlewareOption func(*AuthMiddleware)

// WithEvents publishes access audit events to dispatcher.
func WithEvents(dispatcher events.Dispatcher) MiddlewareOption {
	return func(m *AuthMiddleware) {
		m.events = dispatcher
	}
}

// WithRoleDisclosure controls whether role denials list the accepted roles.
func WithRoleDisclosure(disclose bool) MiddlewareOption {
	return func(m *AuthMiddleware) {
		m.discloseRoles = disclose
	}
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, resolver *Resolver, logger *zap.Logger, opts ...MiddlewareOption) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &AuthMiddleware{
		tokens:        tokens,
		resolver:      resolver,
		logger:        logger.Named("auth"),
		discloseRoles: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	identity, err := m.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		m.reject(c, events.EventAuthenticationFailed, nil, err)
		return err
	}

	bindIdentity(c, identity)
	m.logger.Debug("authenticated",
		zap.String("request_id", observability.RequestID(c)),
		zap.String("account_id", identity.ID),
		zap.String("role", identity.Role.String()))
	m.publish(c, events.EventAuthenticated, &identity, "")
	return c.Next()
}

// Authenticate verifies the Authorization header value, resolves the subject and
// projects the account into an Identity. Errors are classified DomainErrors.
func (m *AuthMiddleware) Authenticate(ctx context.Context, header string) (domain.Identity, error) {
	raw, ok := bearerToken(header)
	if !ok {
		return domain.Identity{}, apperrors.NewNoCredential()
	}

	claims, err := m.tokens.Verify(raw)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return domain.Identity{}, apperrors.NewCredentialExpired()
		}
		return domain.Identity{}, apperrors.NewCredentialInvalid()
	}

	account, err := m.resolver.Resolve(ctx, claims.SubjectID())
	switch {
	case err == nil:
	case errors.Is(err, ErrAccountNotFound):
		return domain.Identity{}, apperrors.NewIdentityGone()
	case errors.Is(err, ErrAccountDeactivated):
		return domain.Identity{}, apperrors.NewAccessRevoked()
	default:
		return domain.Identity{}, apperrors.NewStoreUnavailable(err)
	}

	return domain.IdentityOf(account), nil
}

// Authorize gates a route on roles passed as individual arguments.
func (m *AuthMiddleware) Authorize(roles ...domain.Role) fiber.Handler {
	return m.RequirePolicy(PolicyFor(roles...))
}

// AuthorizeList gates a route on roles passed as one collection.
func (m *AuthMiddleware) AuthorizeList(roles []domain.Role) fiber.Handler {
	return m.RequirePolicy(PolicyOf(roles))
}

// RequirePolicy ensures the bound identity satisfies policy. It must run after Handle.
func (m *AuthMiddleware) RequirePolicy(policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		var subject *domain.Identity
		if ok {
			subject = &identity
		}

		if err := Decide(subject, policy); err != nil {
			appErr := m.toAppError(err, policy)
			m.reject(c, events.EventAccessDenied, subject, appErr)
			return appErr
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) toAppError(err error, policy Policy) error {
	var denied *RoleDeniedError
	if errors.As(err, &denied) {
		if !m.discloseRoles {
			return apperrors.NewRoleNotPermitted(denied.Role.String(), nil)
		}
		return apperrors.NewRoleNotPermitted(denied.Role.String(), policy.Names())
	}
	return apperrors.NewUnauthenticated()
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, eventType events.EventType, identity *domain.Identity, err error) {
	domainErr := apperrors.ToDomainError(err)
	fields := []zap.Field{
		zap.String("request_id", observability.RequestID(c)),
		zap.String("code", domainErr.Code),
		zap.String("path", c.Path()),
	}
	if identity != nil {
		fields = append(fields, zap.String("account_id", identity.ID), zap.String("role", identity.Role.String()))
	}
	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		m.logger.Error("identity lookup failed", append(fields, zap.Error(domainErr.Err))...)
	} else {
		m.logger.Warn("access rejected", fields...)
	}
	m.publish(c, eventType, identity, domainErr.Code)
}

func (m *AuthMiddleware) publish(c *fiber.Ctx, eventType events.EventType, identity *domain.Identity, code string) {
	if m.events == nil {
		return
	}
	event := events.NewEvent(eventType)
	event.Code = code
	event.Method = c.Method()
	event.Path = c.Path()
	event.RequestID = observability.RequestID(c)
	if identity != nil {
		event.AccountID = identity.ID
		event.Role = identity.Role
	}
	if err := m.events.Publish(c.UserContext(), event); err != nil {
		m.logger.Warn("publish access event", zap.String("event", string(eventType)), zap.Error(err))
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
