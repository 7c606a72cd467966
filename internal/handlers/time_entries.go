package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
)

func GetTimeEntries(c *fiber.Ctx) error {
	query := database.DB.Model(&models.TimeEntry{}).Preload("User").Preload("Task")

	if projectID := c.Query("projectId"); projectID != "" {
		parsed, err := uuid.Parse(projectID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Projekt-ID")
		}
		query = query.Where("project_id = ?", parsed)
	}

	var entries []models.TimeEntry
	if err := query.Order("date DESC").Find(&entries).Error; err != nil {
		return respondServerError(c, err, "Zeiteinträge konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, entries)
}

func CreateTimeEntry(c *fiber.Ctx) error {
	var req models.CreateTimeEntryRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", req.ProjectID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeProjectNotFound, "Projekt nicht gefunden")
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	entry := models.TimeEntry{
		ProjectID:       req.ProjectID,
		TaskID:          req.TaskID,
		UserID:          req.UserID,
		Description:     req.Description,
		DurationSeconds: req.DurationSeconds,
		Completed:       completed,
		Date:            date,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return respondServerError(c, err, "Zeiteintrag konnte nicht erstellt werden")
	}

	return respondData(c, fiber.StatusCreated, entry)
}

func DeleteTimeEntry(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Eintrag-ID")
	}

	result := database.DB.Delete(&models.TimeEntry{}, "id = ?", entryID)
	if result.Error != nil {
		return respondServerError(c, result.Error, "Zeiteintrag konnte nicht gelöscht werden")
	}
	if result.RowsAffected == 0 {
		return respondError(c, fiber.StatusNotFound, CodeTimeEntryNotFound, "Zeiteintrag nicht gefunden")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
