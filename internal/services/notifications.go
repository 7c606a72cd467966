package services

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
)

// ErrNotFound is returned when a referenced notification does not exist.
var ErrNotFound = errors.New("record not found")

type NotificationFilter struct {
	Read   *bool
	Type   string
	Limit  int
	Offset int
}

type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	UnreadCount   int64                 `json:"unreadCount"`
}

// CreateNotification persists a notification and returns it with its
// related entities resolved. Priority defaults to NORMAL.
func CreateNotification(req models.CreateNotificationRequest) (*models.Notification, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	notification := models.Notification{
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		Link:      req.Link,
		Priority:  priority,
		ProjectID: req.ProjectID,
		TaskID:    req.TaskID,
		ClientID:  req.ClientID,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		return nil, err
	}

	if err := database.DB.Preload("Project").Preload("Task").Preload("Client").
		First(&notification, notification.ID).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

func filteredQuery(filter NotificationFilter) *gorm.DB {
	query := database.DB.Model(&models.Notification{})
	if filter.Read != nil {
		query = query.Where("read = ?", *filter.Read)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	return query
}

// GetNotifications returns a filtered page plus two counts: total is
// scoped to the filter, unreadCount is always global. The three
// queries are independent and run concurrently.
func GetNotifications(filter NotificationFilter) (*NotificationList, error) {
	limit := filter.Limit
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	list := NotificationList{Notifications: []models.Notification{}}

	var g errgroup.Group
	g.Go(func() error {
		return filteredQuery(filter).
			Preload("Project").Preload("Task").Preload("Client").
			Order("created_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&list.Notifications).Error
	})
	g.Go(func() error {
		return filteredQuery(filter).Count(&list.Total).Error
	})
	g.Go(func() error {
		return database.DB.Model(&models.Notification{}).
			Where("read = ?", false).
			Count(&list.UnreadCount).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &list, nil
}

// MarkAsRead sets the read flag on one notification. Idempotent: a
// second call on an already-read notification succeeds with the same
// final state.
func MarkAsRead(id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := database.DB.First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !notification.Read {
		if err := database.DB.Model(&notification).Update("read", true).Error; err != nil {
			return nil, err
		}
		notification.Read = true
	}
	return &notification, nil
}

// MarkAllAsRead flips every unread notification and reports how many
// were updated.
func MarkAllAsRead() (int64, error) {
	result := database.DB.Model(&models.Notification{}).
		Where("read = ?", false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

// DeleteNotification removes one notification.
func DeleteNotification(id uuid.UUID) error {
	result := database.DB.Delete(&models.Notification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllRead removes every read notification and reports the count.
func DeleteAllRead() (int64, error) {
	result := database.DB.Where("read = ?", true).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
