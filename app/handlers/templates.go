package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log"

	"github.com/enrolld/enrolld/app/dto"
	"github.com/gofiber/fiber/v3"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData carries the flash messages and broadcast report rendered by the
// HTML templates
type pageData struct {
	Error    string
	Success  string
	Logs     string
	Failures []dto.BroadcastFailure
}

// renderPage executes the named template into a buffer before writing, so a
// template failure produces a clean 500 instead of a half-written page
func renderPage(c fiber.Ctx, status int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("Template render failed for %s: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Status(status).SendString(buf.String())
}
