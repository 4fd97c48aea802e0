// Package contact relays contact form submissions to the store backend.
package contact

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/upstream"
	"github.com/devportfolio/devportfolio/internal/web/handler"
)

// Path is the contact endpoint.
const Path = handler.APIPath + "/contact"

const (
	msgSent           = "Message sent successfully"
	msgFieldsRequired = "All fields are required"
	msgSendFailed     = "Failed to send message"
)

// Form is the contact form body.
type Form struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Service is the contact handler service.
type Service struct {
	up       handler.Upstream
	validate *validator.Validate
}

// Handler is the contact handler.
var Handler = Service{}

// Init initializes the contact handler.
func (s *Service) Init(app *fiber.App, up handler.Upstream) error {
	if app == nil || up == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.up = up
	s.validate = validator.New(validator.WithRequiredStructEnabled())

	app.Post(Path, s.Post)

	return nil
}

// Post forwards the form. When the store backend does not take it, the
// submission is only logged and still reported as sent.
func (s *Service) Post(c *fiber.Ctx) error {
	var form Form

	if err := json.Unmarshal(c.Body(), &form); err != nil {
		log.Error().Err(err).Msg("error processing contact form")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgSendFailed})
	}

	form.trim()

	if err := s.validate.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgFieldsRequired})
	}

	message, err := s.up.SubmitContact(c.UserContext(), upstream.Contact{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err == nil {
		return c.JSON(fiber.Map{"message": message})
	}

	upstream.RecordFallback(Path)
	log.Warn().Err(err).
		Str("name", form.Name).
		Str("email", form.Email).
		Str("subject", form.Subject).
		Str("message", form.Message).
		Msg("backend not available, contact form submission logged locally")

	return c.JSON(fiber.Map{"message": msgSent})
}

func (f *Form) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}
