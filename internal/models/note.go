package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string     `json:"title"`
	Content   string     `json:"content" gorm:"not null"`
	ClientID  *uuid.UUID `json:"clientId" gorm:"type:uuid;index"`
	ProjectID *uuid.UUID `json:"projectId" gorm:"type:uuid;index"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Client  *Client  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

type CreateNoteRequest struct {
	Title     string     `json:"title"`
	Content   string     `json:"content" validate:"required"`
	ClientID  *uuid.UUID `json:"clientId"`
	ProjectID *uuid.UUID `json:"projectId"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
