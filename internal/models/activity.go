package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types
const (
	ActivityCreated       = "CREATED"
	ActivityUpdated       = "UPDATED"
	ActivityDeleted       = "DELETED"
	ActivityStatusChanged = "STATUS_CHANGED"
	ActivityAssigned      = "ASSIGNED"
	ActivityCommented     = "COMMENTED"
)

// Entity types an activity can refer to
const (
	EntityClient  = "client"
	EntityProject = "project"
	EntityTask    = "task"
	EntityNote    = "note"
)

// Activity is an append-only audit record of one domain mutation.
// Rows are written once by the activity logger and never updated or
// deleted afterwards.
type Activity struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Type        string            `json:"type" gorm:"not null"`
	EntityType  string            `json:"entityType" gorm:"index:idx_activity_entity;not null"`
	EntityID    uuid.UUID         `json:"entityId" gorm:"type:uuid;index:idx_activity_entity;not null"`
	EntityName  string            `json:"entityName"`
	Description string            `json:"description" gorm:"not null"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:json"`
	UserID      *uuid.UUID        `json:"userId" gorm:"type:uuid"`
	UserName    string            `json:"userName"`
	CreatedAt   time.Time         `json:"createdAt" gorm:"index"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.UserName == "" {
		a.UserName = "System"
	}
	return nil
}
