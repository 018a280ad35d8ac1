package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/gema-writing-api/internal/utils"
)

var (
	userIDClaims = []string{"sub", "user_id", "id"}
	roleClaims   = []string{"role", "roles"}
)

// JWTProtected validates HMAC bearer tokens and stores user_id and user_role in locals.
func JWTProtected(secret string) fiber.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}

	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "missing or malformed bearer token")
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, keyFunc)
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		for _, key := range userIDClaims {
			if id, err := claimUserID(claims[key]); err == nil {
				c.Locals("user_id", id)
				break
			}
		}
		for _, key := range roleClaims {
			if role := claimRole(claims[key]); role != "" {
				c.Locals("user_role", role)
				break
			}
		}

		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func claimUserID(value interface{}) (uint, error) {
	switch v := value.(type) {
	case float64:
		if v <= 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil || parsed == 0 {
			return 0, fmt.Errorf("invalid subject %q", v)
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("unsupported subject type %T", value)
	}
}

func claimRole(value interface{}) string {
	switch v := value.(type) {
	case string:
		return normalizeRoleValue(v)
	case []interface{}:
		for _, item := range v {
			if role, ok := item.(string); ok && strings.TrimSpace(role) != "" {
				return normalizeRoleValue(role)
			}
		}
	}
	return ""
}
