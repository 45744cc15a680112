package handlers

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/enrolld/enrolld/app/dto"
	"github.com/enrolld/enrolld/app/services"
	businessflow "github.com/enrolld/enrolld/business_flow"
	"github.com/enrolld/enrolld/utils"
	"github.com/gofiber/fiber/v3"
)

// AdminHandlerInterface defines the contract for the admin pages
type AdminHandlerInterface interface {
	ShowLogin(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	Panel(c fiber.Ctx) error
	Broadcast(c fiber.Ctx) error
	Logs(c fiber.Ctx) error
	Export(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
}

type AdminHandler struct {
	authFlow       businessflow.AdminAuthFlow
	broadcastFlow  businessflow.BroadcastFlow
	sessionService services.SessionService
	logFilePath    string
	cookieSecure   bool
	cookieSameSite string
}

func NewAdminHandler(
	authFlow businessflow.AdminAuthFlow,
	broadcastFlow businessflow.BroadcastFlow,
	sessionService services.SessionService,
	logFilePath string,
	cookieSecure bool,
	cookieSameSite string,
) AdminHandlerInterface {
	return &AdminHandler{
		authFlow:       authFlow,
		broadcastFlow:  broadcastFlow,
		sessionService: sessionService,
		logFilePath:    logFilePath,
		cookieSecure:   cookieSecure,
		cookieSameSite: cookieSameSite,
	}
}

// ShowLogin renders the admin login form
func (h *AdminHandler) ShowLogin(c fiber.Ctx) error {
	return renderPage(c, fiber.StatusOK, "admin_login.html", pageData{})
}

// Login verifies credentials and issues the session cookie. All failed
// attempts get the same message regardless of which part was wrong.
func (h *AdminHandler) Login(c fiber.Ctx) error {
	req := &dto.AdminLoginRequest{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}

	metadata := clientMetadata(c)
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.authFlow.Login(ctx, req, metadata); err != nil {
		if businessflow.IsInvalidCredentials(err) {
			log.Printf("Failed admin login attempt ip=%s", c.IP())
			return renderPage(c, fiber.StatusUnauthorized, "admin_login.html", pageData{Error: "Invalid credentials"})
		}
		log.Println("Admin login failed", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Database operation failed")
	}

	token, err := h.sessionService.Issue()
	if err != nil {
		log.Println("Session issue failed", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     utils.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionService.TTL().Seconds()),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: h.cookieSameSite,
	})

	return c.Redirect().Status(fiber.StatusSeeOther).To("/admin")
}

// Panel renders the broadcast form
func (h *AdminHandler) Panel(c fiber.Ctx) error {
	return renderPage(c, fiber.StatusOK, "admin.html", pageData{})
}

// Broadcast sends the announcement to every registered student and
// re-renders the panel with the delivery report
func (h *AdminHandler) Broadcast(c fiber.Ctx) error {
	req := &dto.BroadcastRequest{
		Message: c.FormValue("message"),
	}

	metadata := clientMetadata(c)
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Minute)
	defer cancel()

	resp, err := h.broadcastFlow.Broadcast(ctx, req, metadata)
	if err != nil {
		if businessflow.IsEmptyMessage(err) {
			return renderPage(c, fiber.StatusBadRequest, "admin.html", pageData{Error: "Message must not be empty"})
		}
		log.Println("Broadcast failed", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to process broadcast")
	}

	return renderPage(c, fiber.StatusOK, "admin.html", pageData{
		Success:  "Message broadcasted successfully",
		Failures: resp.Failures,
	})
}

// Logs serves the append-only application log file
func (h *AdminHandler) Logs(c fiber.Ctx) error {
	content, err := os.ReadFile(h.logFilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).SendString("Logs not available")
		}
		log.Println("Log file read failed", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Logs not available")
	}
	return renderPage(c, fiber.StatusOK, "logs.html", pageData{Logs: string(content)})
}

// Export downloads the current roster as an xlsx workbook
func (h *AdminHandler) Export(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	filename, data, err := h.broadcastFlow.ExportUsers(ctx)
	if err != nil {
		log.Println("Roster export failed", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to export students")
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// Logout clears the session cookie and returns to the login page
func (h *AdminHandler) Logout(c fiber.Ctx) error {
	c.ClearCookie(utils.SessionCookieName)
	log.Println("Admin logged out")
	return c.Redirect().Status(fiber.StatusSeeOther).To("/admin/login")
}
