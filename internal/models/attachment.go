package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attachment struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID *uuid.UUID `json:"projectId" gorm:"type:uuid;index"`
	TaskID    *uuid.UUID `json:"taskId" gorm:"type:uuid;index"`
	FileName  string     `json:"fileName" gorm:"not null"`
	FilePath  string     `json:"filePath" gorm:"not null"`
	Size      int64      `json:"size"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type CreateAttachmentRequest struct {
	ProjectID *uuid.UUID `json:"projectId"`
	TaskID    *uuid.UUID `json:"taskId"`
	FileName  string     `json:"fileName" validate:"required"`
	FilePath  string     `json:"filePath" validate:"required"`
	Size      int64      `json:"size" validate:"gte=0"`
}
