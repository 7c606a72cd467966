package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
	"github.com/mvogel/agentur-crm/internal/services"
)

// noteLabel picks the activity entity name for a note; untitled notes
// fall back to a content prefix.
func noteLabel(note *models.Note) string {
	if note.Title != "" {
		return note.Title
	}
	content := []rune(note.Content)
	if len(content) > 40 {
		return string(content[:40]) + "…"
	}
	return note.Content
}

func GetNotes(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Note{})

	if clientID := c.Query("clientId"); clientID != "" {
		parsed, err := uuid.Parse(clientID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Kunden-ID")
		}
		query = query.Where("client_id = ?", parsed)
	}
	if projectID := c.Query("projectId"); projectID != "" {
		parsed, err := uuid.Parse(projectID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Projekt-ID")
		}
		query = query.Where("project_id = ?", parsed)
	}

	var notes []models.Note
	if err := query.Order("created_at DESC").Find(&notes).Error; err != nil {
		return respondServerError(c, err, "Notizen konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, notes)
}

func GetNote(c *fiber.Ctx) error {
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Notiz-ID")
	}

	var note models.Note
	if err := database.DB.Preload("Client").Preload("Project").
		First(&note, "id = ?", noteID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeNoteNotFound, "Notiz nicht gefunden")
	}
	return respondData(c, fiber.StatusOK, note)
}

func CreateNote(c *fiber.Ctx) error {
	var req models.CreateNoteRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	if req.ClientID != nil {
		var client models.Client
		if err := database.DB.First(&client, "id = ?", *req.ClientID).Error; err != nil {
			return respondError(c, fiber.StatusNotFound, CodeClientNotFound, "Kunde nicht gefunden")
		}
	}
	if req.ProjectID != nil {
		var project models.Project
		if err := database.DB.First(&project, "id = ?", *req.ProjectID).Error; err != nil {
			return respondError(c, fiber.StatusNotFound, CodeProjectNotFound, "Projekt nicht gefunden")
		}
	}

	note := models.Note{
		Title:     req.Title,
		Content:   req.Content,
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
	}
	if err := database.DB.Create(&note).Error; err != nil {
		return respondServerError(c, err, "Notiz konnte nicht erstellt werden")
	}

	services.LogCreated(models.EntityNote, note.ID, noteLabel(&note), nil, "")

	return respondData(c, fiber.StatusCreated, note)
}

func UpdateNote(c *fiber.Ctx) error {
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Notiz-ID")
	}

	var note models.Note
	if err := database.DB.First(&note, "id = ?", noteID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeNoteNotFound, "Notiz nicht gefunden")
	}

	var req models.UpdateNoteRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	changes := []string{}
	if req.Title != nil && *req.Title != note.Title {
		note.Title = *req.Title
		changes = append(changes, "title")
	}
	if req.Content != nil && *req.Content != note.Content {
		note.Content = *req.Content
		changes = append(changes, "content")
	}

	if err := database.DB.Save(&note).Error; err != nil {
		return respondServerError(c, err, "Notiz konnte nicht aktualisiert werden")
	}

	services.LogUpdated(models.EntityNote, note.ID, noteLabel(&note), nil, "", changes...)

	return respondData(c, fiber.StatusOK, note)
}

func DeleteNote(c *fiber.Ctx) error {
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Notiz-ID")
	}

	var note models.Note
	if err := database.DB.First(&note, "id = ?", noteID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeNoteNotFound, "Notiz nicht gefunden")
	}

	if err := database.DB.Delete(&note).Error; err != nil {
		return respondServerError(c, err, "Notiz konnte nicht gelöscht werden")
	}

	services.LogDeleted(models.EntityNote, note.ID, noteLabel(&note), nil, "")

	return c.SendStatus(fiber.StatusNoContent)
}
