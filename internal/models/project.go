package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project statuses
const (
	ProjectPlanning   = "PLANNING"
	ProjectInProgress = "IN_PROGRESS"
	ProjectReview     = "REVIEW"
	ProjectCompleted  = "COMPLETED"
	ProjectOnHold     = "ON_HOLD"
)

type Project struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID      `json:"clientId" gorm:"type:uuid;index;not null"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Status      string         `json:"status" gorm:"default:PLANNING"`
	Budget      float64        `json:"budget"`
	StartDate   *time.Time     `json:"startDate"`
	EndDate     *time.Time     `json:"endDate"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Client  *Client         `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Members []ProjectMember `json:"members,omitempty" gorm:"foreignKey:ProjectID"`
	Tasks   []Task          `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProjectMember struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `json:"projectId" gorm:"type:uuid;uniqueIndex:idx_project_user;not null"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex:idx_project_user;not null"`
	Role      string    `json:"role" gorm:"default:member"`
	CreatedAt time.Time `json:"createdAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CreateProjectRequest struct {
	ClientID    uuid.UUID  `json:"clientId" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=PLANNING IN_PROGRESS REVIEW COMPLETED ON_HOLD"`
	Budget      float64    `json:"budget" validate:"gte=0"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof=PLANNING IN_PROGRESS REVIEW COMPLETED ON_HOLD"`
	Budget      *float64   `json:"budget" validate:"omitempty,gte=0"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Role   string    `json:"role"`
}
