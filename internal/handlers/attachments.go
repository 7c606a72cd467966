package handlers

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/logging"
	"github.com/mvogel/agentur-crm/internal/models"
)

func GetAttachments(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Attachment{})

	if projectID := c.Query("projectId"); projectID != "" {
		parsed, err := uuid.Parse(projectID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Projekt-ID")
		}
		query = query.Where("project_id = ?", parsed)
	}
	if taskID := c.Query("taskId"); taskID != "" {
		parsed, err := uuid.Parse(taskID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Aufgaben-ID")
		}
		query = query.Where("task_id = ?", parsed)
	}

	var attachments []models.Attachment
	if err := query.Order("created_at DESC").Find(&attachments).Error; err != nil {
		return respondServerError(c, err, "Anhänge konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, attachments)
}

func CreateAttachment(c *fiber.Ctx) error {
	var req models.CreateAttachmentRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	attachment := models.Attachment{
		ProjectID: req.ProjectID,
		TaskID:    req.TaskID,
		FileName:  req.FileName,
		FilePath:  req.FilePath,
		Size:      req.Size,
	}
	if err := database.DB.Create(&attachment).Error; err != nil {
		return respondServerError(c, err, "Anhang konnte nicht erstellt werden")
	}

	return respondData(c, fiber.StatusCreated, attachment)
}

func DeleteAttachment(c *fiber.Ctx) error {
	attachmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Anhang-ID")
	}

	var attachment models.Attachment
	if err := database.DB.First(&attachment, "id = ?", attachmentID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeAttachNotFound, "Anhang nicht gefunden")
	}

	if err := database.DB.Delete(&attachment).Error; err != nil {
		return respondServerError(c, err, "Anhang konnte nicht gelöscht werden")
	}

	// Best effort: a missing or locked file must not fail the request
	if err := os.Remove(attachment.FilePath); err != nil && !os.IsNotExist(err) {
		logging.Logger.Warn("Failed to remove attachment file",
			zap.String("path", attachment.FilePath),
			zap.Error(err))
	}

	return c.SendStatus(fiber.StatusNoContent)
}
