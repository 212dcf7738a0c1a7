package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tenderdesk/procurement-service/internal/domain"
	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

const userKey = "auth_user"

// Gate messages, kept stable for API clients.
const (
	msgMissingToken = "Access Denied! Unauthorized User"
	msgInvalidToken = "Invalid Token..."
	msgWrongRole    = "Access Denied!"
)

// Verifier validates session tokens.
type Verifier interface {
	Verify(token string) (*domain.User, error)
}

// Gate authorizes requests by the role embedded in their session token.
type Gate struct {
	tokens Verifier
}

// NewGate constructs the access gate.
func NewGate(tokens Verifier) *Gate {
	return &Gate{tokens: tokens}
}

// Authorize checks the Authorization header value against the required role
// and returns the token's user snapshot.
func (g *Gate) Authorize(header string, required domain.Role) (*domain.User, error) {
	token := bearerToken(header)
	if token == "" {
		return nil, apperrors.NewUnauthorized(msgMissingToken)
	}

	user, err := g.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized(msgInvalidToken)
	}

	role, err := domain.ParseRole(string(user.Role))
	if err != nil {
		return nil, apperrors.NewForbidden(msgWrongRole)
	}

	switch required {
	case domain.RoleAdmin, domain.RoleMember:
		if role != required {
			return nil, apperrors.NewForbidden(msgWrongRole)
		}
		return user, nil
	default:
		return nil, apperrors.NewForbidden(msgWrongRole)
	}
}

// RequireAdmin guards admin routes. Admin handlers act globally, so no user is
// attached to the request.
func (g *Gate) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := g.Authorize(c.Get(fiber.HeaderAuthorization), domain.RoleAdmin); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireMember guards member routes and exposes the caller via UserFromContext.
func (g *Gate) RequireMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := g.Authorize(c.Get(fiber.HeaderAuthorization), domain.RoleMember)
		if err != nil {
			return err
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

// UserFromContext retrieves the member attached by RequireMember.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}

// bearerToken returns the second whitespace-delimited segment of the header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
