// Package handlers contains HTTP request handlers and presentation layer logic for the web endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/enrolld/enrolld/app/dto"
	businessflow "github.com/enrolld/enrolld/business_flow"
	"github.com/gofiber/fiber/v3"
)

// RegistrationHandlerInterface defines the contract for the public
// registration pages
type RegistrationHandlerInterface interface {
	ShowForm(c fiber.Ctx) error
	Register(c fiber.Ctx) error
	Success(c fiber.Ctx) error
}

type RegistrationHandler struct {
	flow businessflow.RegistrationFlow
}

func NewRegistrationHandler(flow businessflow.RegistrationFlow) RegistrationHandlerInterface {
	return &RegistrationHandler{flow: flow}
}

// ShowForm renders the registration form
func (h *RegistrationHandler) ShowForm(c fiber.Ctx) error {
	return renderPage(c, fiber.StatusOK, "register.html", pageData{})
}

// Register accepts the submitted form and redirects to the success page.
// Validation and duplicate errors re-render the form with a message so the
// student can correct the input in place.
func (h *RegistrationHandler) Register(c fiber.Ctx) error {
	req := &dto.RegisterRequest{
		Name:  c.FormValue("name"),
		Email: c.FormValue("email"),
	}

	metadata := clientMetadata(c)
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.flow.Register(ctx, req, metadata); err != nil {
		if businessflow.IsInvalidEmail(err) {
			return renderPage(c, fiber.StatusBadRequest, "register.html", pageData{Error: "Invalid email format"})
		}
		if businessflow.IsEmailAlreadyExists(err) {
			return renderPage(c, fiber.StatusBadRequest, "register.html", pageData{Error: "Email already registered"})
		}
		log.Println("Registration failed", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Database operation failed")
	}

	return c.Redirect().Status(fiber.StatusSeeOther).To("/success")
}

// Success renders the post-registration confirmation page
func (h *RegistrationHandler) Success(c fiber.Ctx) error {
	return renderPage(c, fiber.StatusOK, "success.html", pageData{})
}

// clientMetadata captures the request attributes used for audit logging
func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		metadata.SetRequestID(requestID)
	}
	return metadata
}
