package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
)

const searchLimit = 20

type searchResult struct {
	Clients  []models.Client  `json:"clients"`
	Projects []models.Project `json:"projects"`
	Tasks    []models.Task    `json:"tasks"`
	Notes    []models.Note    `json:"notes"`
}

// GlobalSearch matches the query against clients, projects, tasks and
// notes. Queries shorter than two characters return an empty result
// instead of an error.
func GlobalSearch(c *fiber.Ctx) error {
	result := searchResult{
		Clients:  []models.Client{},
		Projects: []models.Project{},
		Tasks:    []models.Task{},
		Notes:    []models.Note{},
	}

	query := strings.TrimSpace(c.Query("q"))
	if len([]rune(query)) < 2 {
		return respondData(c, fiber.StatusOK, result)
	}
	pattern := "%" + strings.ToLower(query) + "%"

	if err := database.DB.
		Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern).
		Limit(searchLimit).
		Find(&result.Clients).Error; err != nil {
		return respondServerError(c, err, "Suche fehlgeschlagen")
	}
	if err := database.DB.
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Limit(searchLimit).
		Find(&result.Projects).Error; err != nil {
		return respondServerError(c, err, "Suche fehlgeschlagen")
	}
	if err := database.DB.
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Limit(searchLimit).
		Find(&result.Tasks).Error; err != nil {
		return respondServerError(c, err, "Suche fehlgeschlagen")
	}
	if err := database.DB.
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern).
		Limit(searchLimit).
		Find(&result.Notes).Error; err != nil {
		return respondServerError(c, err, "Suche fehlgeschlagen")
	}

	return respondData(c, fiber.StatusOK, result)
}
