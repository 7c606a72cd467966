package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses
const (
	TaskTodo       = "TODO"
	TaskInProgress = "IN_PROGRESS"
	TaskReview     = "REVIEW"
	TaskDone       = "DONE"
)

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID  `json:"projectId" gorm:"type:uuid;index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      string     `json:"status" gorm:"default:TODO"`
	Priority    string     `json:"priority" gorm:"default:MEDIUM"`
	AssigneeID  *uuid.UUID `json:"assigneeId" gorm:"type:uuid;index"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Project  *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Assignee *User    `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type CreateTaskRequest struct {
	ProjectID   uuid.UUID  `json:"projectId" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS REVIEW DONE"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"dueDate"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS REVIEW DONE"`
}

type AssignTaskRequest struct {
	AssigneeID uuid.UUID `json:"assigneeId" validate:"required"`
}
