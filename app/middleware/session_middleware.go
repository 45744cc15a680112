// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"github.com/enrolld/enrolld/app/services"
	"github.com/enrolld/enrolld/utils"
	"github.com/gofiber/fiber/v3"
)

// SessionMiddleware guards the admin pages behind the signed session cookie
type SessionMiddleware struct {
	sessionService services.SessionService
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessionService services.SessionService) *SessionMiddleware {
	return &SessionMiddleware{
		sessionService: sessionService,
	}
}

// RequireAdmin validates the session cookie and redirects browsers without a
// valid session to the login page. Missing, expired, and tampered cookies are
// all treated the same way.
func (m *SessionMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(utils.SessionCookieName)
		if err := m.sessionService.Validate(token); err != nil {
			return c.Redirect().Status(fiber.StatusSeeOther).To("/admin/login")
		}

		// Store RequestID for audit logging
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}
