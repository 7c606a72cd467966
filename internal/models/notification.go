package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification priorities
const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Notification is a user-facing alert, distinct from the audit log.
// Title, message and type are immutable after creation; only the read
// flag changes.
type Notification struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Type      string     `json:"type" gorm:"not null"`
	Title     string     `json:"title" gorm:"not null"`
	Message   string     `json:"message"`
	Read      bool       `json:"read" gorm:"default:false;index"`
	Link      string     `json:"link"`
	Priority  string     `json:"priority" gorm:"default:NORMAL"`
	ProjectID *uuid.UUID `json:"projectId" gorm:"type:uuid;index"`
	TaskID    *uuid.UUID `json:"taskId" gorm:"type:uuid;index"`
	ClientID  *uuid.UUID `json:"clientId" gorm:"type:uuid;index"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Task    *Task    `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	Client  *Client  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

type CreateNotificationRequest struct {
	Type      string     `json:"type" validate:"required"`
	Title     string     `json:"title" validate:"required"`
	Message   string     `json:"message"`
	Link      string     `json:"link"`
	Priority  string     `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	ProjectID *uuid.UUID `json:"projectId"`
	TaskID    *uuid.UUID `json:"taskId"`
	ClientID  *uuid.UUID `json:"clientId"`
}
