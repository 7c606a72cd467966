package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/logging"
	"github.com/mvogel/agentur-crm/internal/models"
)

var kindLabels = map[string]string{
	models.EntityClient:  "Kunde",
	models.EntityProject: "Projekt",
	models.EntityTask:    "Aufgabe",
	models.EntityNote:    "Notiz",
}

func kindLabel(entityType string) string {
	if label, ok := kindLabels[entityType]; ok {
		return label
	}
	return "Eintrag"
}

// LogActivity appends one audit record. It never returns an error:
// a failed insert is logged and swallowed so that audit logging can
// never fail the business operation that triggered it.
func LogActivity(activityType, entityType string, entityID uuid.UUID, entityName, description string, metadata map[string]interface{}, userID *uuid.UUID, userName string) {
	record := models.Activity{
		Type:        activityType,
		EntityType:  entityType,
		EntityID:    entityID,
		EntityName:  entityName,
		Description: description,
		UserID:      userID,
		UserName:    userName,
	}
	if metadata != nil {
		record.Metadata = datatypes.JSONMap(metadata)
	}

	if err := database.DB.Create(&record).Error; err != nil {
		logging.Logger.Warn("Failed to log activity",
			zap.String("type", activityType),
			zap.String("entityType", entityType),
			zap.String("entityId", entityID.String()),
			zap.Error(err))
	}
}

// LogCreated records the creation of an entity.
func LogCreated(entityType string, entityID uuid.UUID, name string, userID *uuid.UUID, userName string) {
	description := fmt.Sprintf("%s \"%s\" wurde erstellt", kindLabel(entityType), name)
	LogActivity(models.ActivityCreated, entityType, entityID, name, description, nil, userID, userName)
}

// LogUpdated records an update; the changed field names, when known,
// are appended to the description and carried in the metadata.
func LogUpdated(entityType string, entityID uuid.UUID, name string, userID *uuid.UUID, userName string, changes ...string) {
	description := fmt.Sprintf("%s \"%s\" wurde aktualisiert", kindLabel(entityType), name)
	var metadata map[string]interface{}
	if len(changes) > 0 {
		description += fmt.Sprintf(" (%s)", strings.Join(changes, ", "))
		metadata = map[string]interface{}{"changes": changes}
	}
	LogActivity(models.ActivityUpdated, entityType, entityID, name, description, metadata, userID, userName)
}

// LogDeleted records the deletion of an entity.
func LogDeleted(entityType string, entityID uuid.UUID, name string, userID *uuid.UUID, userName string) {
	description := fmt.Sprintf("%s \"%s\" wurde gelöscht", kindLabel(entityType), name)
	LogActivity(models.ActivityDeleted, entityType, entityID, name, description, nil, userID, userName)
}

// LogStatusChanged records a status transition.
func LogStatusChanged(entityType string, entityID uuid.UUID, name, oldStatus, newStatus string, userID *uuid.UUID, userName string) {
	description := fmt.Sprintf("Status von \"%s\" geändert: %s → %s", name, oldStatus, newStatus)
	metadata := map[string]interface{}{
		"oldStatus": oldStatus,
		"newStatus": newStatus,
	}
	LogActivity(models.ActivityStatusChanged, entityType, entityID, name, description, metadata, userID, userName)
}

// LogAssigned records an assignment to a user.
func LogAssigned(entityType string, entityID uuid.UUID, name, assigneeName string, userID *uuid.UUID, userName string) {
	description := fmt.Sprintf("%s \"%s\" wurde %s zugewiesen", kindLabel(entityType), name, assigneeName)
	metadata := map[string]interface{}{"assignee": assigneeName}
	LogActivity(models.ActivityAssigned, entityType, entityID, name, description, metadata, userID, userName)
}
