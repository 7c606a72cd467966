package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mvogel/agentur-crm/internal/logging"
)

var validate = validator.New()

// Error codes returned in the response envelope
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeMemberExists      = "MEMBER_EXISTS"
	CodeClientNotFound    = "CLIENT_NOT_FOUND"
	CodeProjectNotFound   = "PROJECT_NOT_FOUND"
	CodeTaskNotFound      = "TASK_NOT_FOUND"
	CodeNoteNotFound      = "NOTE_NOT_FOUND"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeMemberNotFound    = "MEMBER_NOT_FOUND"
	CodeTimeEntryNotFound = "TIME_ENTRY_NOT_FOUND"
	CodeAttachNotFound    = "ATTACHMENT_NOT_FOUND"
	CodeNotifNotFound     = "NOTIFICATION_NOT_FOUND"
	CodeInternal          = "INTERNAL_ERROR"
)

func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

// respondServerError hides the cause from the client; the original
// error only goes to the process log.
func respondServerError(c *fiber.Ctx, err error, message string) error {
	logging.Logger.Error("Request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return respondError(c, fiber.StatusInternalServerError, CodeInternal, message)
}

// parseAndValidate decodes the JSON body into dest and runs the
// validate tags. On failure it writes the 400 response and reports
// false; the handler must return nil in that case.
func parseAndValidate(c *fiber.Ctx, dest interface{}) bool {
	if err := c.BodyParser(dest); err != nil {
		respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültiger Request-Body")
		return false
	}
	if err := validate.Struct(dest); err != nil {
		issues := []fiber.Map{}
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fe := range fieldErrors {
				issues = append(issues, fiber.Map{
					"field": fe.Field(),
					"rule":  fe.Tag(),
				})
			}
		}
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Validierung fehlgeschlagen",
			"code":    CodeValidation,
			"issues":  issues,
		})
		return false
	}
	return true
}
