package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-writing-api/internal/models"
	"github.com/noah-isme/gema-writing-api/internal/utils"
)

// Roles recognised by the writing API.
const (
	AuthRoleAny      = "any"
	AuthRoleStudent  = models.RoleStudent
	AuthRoleReviewer = "reviewer"
)

// AuthOptions configures the WithAuth helper.
type AuthOptions struct {
	Role        string
	RequireUser bool
}

// WithAuth wraps a handler with authentication and role guards.
// AuthRoleReviewer admits teachers and admins.
func WithAuth(handler fiber.Handler, opts AuthOptions) fiber.Handler {
	role := strings.ToLower(strings.TrimSpace(opts.Role))
	if role == "" {
		role = AuthRoleAny
	}
	requireUser := opts.RequireUser || role != AuthRoleAny

	return func(c *fiber.Ctx) error {
		if requireUser && !hasUser(c) {
			return utils.Fail(c, fiber.StatusUnauthorized, "authentication required", nil)
		}

		current := normalizeRoleValue(c.Locals("user_role"))
		allowed := true
		switch role {
		case AuthRoleAny:
		case AuthRoleReviewer:
			allowed = models.IsReviewerRole(current)
		default:
			allowed = current == role
		}
		if !allowed {
			return utils.Fail(c, fiber.StatusForbidden, "insufficient permissions", nil)
		}

		return handler(c)
	}
}

func hasUser(c *fiber.Ctx) bool {
	switch id := c.Locals("user_id").(type) {
	case uint:
		return id != 0
	case int:
		return id > 0
	case nil:
		return false
	default:
		return true
	}
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
