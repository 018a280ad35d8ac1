package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-writing-api/internal/middleware"
)

func withIdentity(userID uint, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals("user_id", userID)
		}
		if role != "" {
			c.Locals("user_role", role)
		}
		return c.Next()
	}
}

func noContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func TestWithAuthStudentRole(t *testing.T) {
	app := fiber.New()
	app.Use(withIdentity(10, "Student"))
	app.Get("/", middleware.WithAuth(noContent, middleware.AuthOptions{Role: middleware.AuthRoleStudent}))

	resp := perform(t, app)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestWithAuthStudentRoleDenied(t *testing.T) {
	app := fiber.New()
	app.Use(withIdentity(10, "guest"))
	app.Get("/", middleware.WithAuth(noContent, middleware.AuthOptions{Role: middleware.AuthRoleStudent}))

	resp := perform(t, app)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestWithAuthReviewerAllowsTeacherAndAdmin(t *testing.T) {
	for _, role := range []string{"teacher", "ADMIN"} {
		app := fiber.New()
		app.Use(withIdentity(1, role))
		app.Get("/", middleware.WithAuth(noContent, middleware.AuthOptions{Role: middleware.AuthRoleReviewer}))

		resp := perform(t, app)
		require.Equal(t, fiber.StatusNoContent, resp.StatusCode, role)
	}
}

func TestWithAuthReviewerRejectsStudent(t *testing.T) {
	app := fiber.New()
	app.Use(withIdentity(3, "student"))
	app.Get("/", middleware.WithAuth(noContent, middleware.AuthOptions{Role: middleware.AuthRoleReviewer}))

	resp := perform(t, app)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestWithAuthRequireUser(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.WithAuth(noContent, middleware.AuthOptions{Role: middleware.AuthRoleAny, RequireUser: true}))

	resp := perform(t, app)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWithAuthAnyAllowsAnonymousByDefault(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.WithAuth(noContent, middleware.AuthOptions{}))

	resp := perform(t, app)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func perform(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
