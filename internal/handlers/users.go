package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
)

func GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("name ASC").Find(&users).Error; err != nil {
		return respondServerError(c, err, "Benutzer konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, users)
}

func GetUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Benutzer-ID")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeUserNotFound, "Benutzer nicht gefunden")
	}
	return respondData(c, fiber.StatusOK, user)
}

func CreateUser(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	var existing int64
	database.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&existing)
	if existing > 0 {
		return respondError(c, fiber.StatusBadRequest, CodeEmailExists, "E-Mail-Adresse wird bereits verwendet")
	}

	role := req.Role
	if role == "" {
		role = "designer"
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		AvatarURL: req.AvatarURL,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return respondServerError(c, err, "Benutzer konnte nicht erstellt werden")
	}

	return respondData(c, fiber.StatusCreated, user)
}
