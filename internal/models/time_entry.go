package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeEntry struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID       uuid.UUID  `json:"projectId" gorm:"type:uuid;index;not null"`
	TaskID          *uuid.UUID `json:"taskId" gorm:"type:uuid;index"`
	UserID          *uuid.UUID `json:"userId" gorm:"type:uuid;index"`
	Description     string     `json:"description"`
	DurationSeconds int        `json:"durationSeconds" gorm:"not null"`
	Completed       bool       `json:"completed" gorm:"default:true"`
	Date            time.Time  `json:"date"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Task    *Task    `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return nil
}

type CreateTimeEntryRequest struct {
	ProjectID       uuid.UUID  `json:"projectId" validate:"required"`
	TaskID          *uuid.UUID `json:"taskId"`
	UserID          *uuid.UUID `json:"userId"`
	Description     string     `json:"description"`
	DurationSeconds int        `json:"durationSeconds" validate:"required,gt=0"`
	Completed       *bool      `json:"completed"`
	Date            *time.Time `json:"date"`
}
