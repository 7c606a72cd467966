package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
)

// GetActivities lists audit records, newest first. Filterable by
// entity type, entity id and activity type; default limit 50.
func GetActivities(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Activity{})

	if entityType := c.Query("entityType"); entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if entityID := c.Query("entityId"); entityID != "" {
		parsed, err := uuid.Parse(entityID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Entitäts-ID")
		}
		query = query.Where("entity_id = ?", parsed)
	}
	if activityType := c.Query("type"); activityType != "" {
		query = query.Where("type = ?", activityType)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var activities []models.Activity
	if err := query.Order("created_at DESC").Limit(limit).Find(&activities).Error; err != nil {
		return respondServerError(c, err, "Aktivitäten konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, activities)
}
