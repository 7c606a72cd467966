package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
	"github.com/mvogel/agentur-crm/internal/services"
)

func GetClients(c *fiber.Ctx) error {
	var clients []models.Client
	if err := database.DB.Order("created_at DESC").Find(&clients).Error; err != nil {
		return respondServerError(c, err, "Kunden konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, clients)
}

func GetClient(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Kunden-ID")
	}

	var client models.Client
	if err := database.DB.Preload("Projects").First(&client, "id = ?", clientID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeClientNotFound, "Kunde nicht gefunden")
	}
	return respondData(c, fiber.StatusOK, client)
}

func CreateClient(c *fiber.Ctx) error {
	var req models.CreateClientRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	// Unscoped: the unique index still holds soft-deleted rows, so the
	// conflict must be reported for those too
	var existing int64
	database.DB.Unscoped().Model(&models.Client{}).Where("email = ?", req.Email).Count(&existing)
	if existing > 0 {
		return respondError(c, fiber.StatusBadRequest, CodeEmailExists, "E-Mail-Adresse wird bereits verwendet")
	}

	client := models.Client{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := database.DB.Create(&client).Error; err != nil {
		return respondServerError(c, err, "Kunde konnte nicht erstellt werden")
	}

	services.LogCreated(models.EntityClient, client.ID, client.Name, nil, "")

	return respondData(c, fiber.StatusCreated, client)
}

func UpdateClient(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Kunden-ID")
	}

	var client models.Client
	if err := database.DB.First(&client, "id = ?", clientID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeClientNotFound, "Kunde nicht gefunden")
	}

	var req models.UpdateClientRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	if req.Email != nil && *req.Email != client.Email {
		var existing int64
		database.DB.Unscoped().Model(&models.Client{}).
			Where("email = ? AND id != ?", *req.Email, clientID).
			Count(&existing)
		if existing > 0 {
			return respondError(c, fiber.StatusBadRequest, CodeEmailExists, "E-Mail-Adresse wird bereits verwendet")
		}
	}

	changes := []string{}
	if req.Name != nil && *req.Name != client.Name {
		client.Name = *req.Name
		changes = append(changes, "name")
	}
	if req.Company != nil && *req.Company != client.Company {
		client.Company = *req.Company
		changes = append(changes, "company")
	}
	if req.Email != nil && *req.Email != client.Email {
		client.Email = *req.Email
		changes = append(changes, "email")
	}
	if req.Phone != nil && *req.Phone != client.Phone {
		client.Phone = *req.Phone
		changes = append(changes, "phone")
	}
	if req.Address != nil && *req.Address != client.Address {
		client.Address = *req.Address
		changes = append(changes, "address")
	}
	if req.Notes != nil && *req.Notes != client.Notes {
		client.Notes = *req.Notes
		changes = append(changes, "notes")
	}

	if err := database.DB.Save(&client).Error; err != nil {
		return respondServerError(c, err, "Kunde konnte nicht aktualisiert werden")
	}

	services.LogUpdated(models.EntityClient, client.ID, client.Name, nil, "", changes...)

	return respondData(c, fiber.StatusOK, client)
}

func DeleteClient(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Kunden-ID")
	}

	var client models.Client
	if err := database.DB.First(&client, "id = ?", clientID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeClientNotFound, "Kunde nicht gefunden")
	}

	// Soft delete: the row keeps its history via deleted_at
	if err := database.DB.Delete(&client).Error; err != nil {
		return respondServerError(c, err, "Kunde konnte nicht gelöscht werden")
	}

	services.LogDeleted(models.EntityClient, client.ID, client.Name, nil, "")

	return c.SendStatus(fiber.StatusNoContent)
}
