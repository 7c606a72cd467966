package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
)

func seedNotification(t *testing.T, notifType string, read bool) models.Notification {
	t.Helper()
	notification := models.Notification{
		Type:     notifType,
		Title:    "Test",
		Message:  "Testnachricht",
		Read:     read,
		Priority: models.PriorityNormal,
	}
	require.NoError(t, database.DB.Create(&notification).Error)
	return notification
}

func TestCreateNotificationDefaultsPriority(t *testing.T) {
	setupTestDB(t)

	notification, err := CreateNotification(models.CreateNotificationRequest{
		Type:  "task_assigned",
		Title: "Neue Aufgabe",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityNormal, notification.Priority)
	assert.False(t, notification.Read)
}

func TestCreateNotificationResolvesRelations(t *testing.T) {
	setupTestDB(t)

	client := models.Client{Name: "Acme GmbH", Email: "info@acme.de"}
	require.NoError(t, database.DB.Create(&client).Error)
	project := models.Project{ClientID: client.ID, Name: "Relaunch"}
	require.NoError(t, database.DB.Create(&project).Error)

	notification, err := CreateNotification(models.CreateNotificationRequest{
		Type:      "project_completed",
		Title:     "Projekt abgeschlossen",
		Priority:  models.PriorityHigh,
		ProjectID: &project.ID,
		ClientID:  &client.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, notification.Project)
	assert.Equal(t, "Relaunch", notification.Project.Name)
	require.NotNil(t, notification.Client)
	assert.Equal(t, "Acme GmbH", notification.Client.Name)
	assert.Equal(t, models.PriorityHigh, notification.Priority)
}

func TestCreateNotificationReportsFailedRelationLookup(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Migrator().DropTable(&models.Project{}))

	projectID := uuid.New()
	_, err := CreateNotification(models.CreateNotificationRequest{
		Type:      "project_completed",
		Title:     "Projekt abgeschlossen",
		ProjectID: &projectID,
	})
	assert.Error(t, err)
}

func TestGetNotificationsUnreadCountIsGlobal(t *testing.T) {
	setupTestDB(t)

	seedNotification(t, "task_assigned", false)
	seedNotification(t, "task_assigned", false)
	seedNotification(t, "task_completed", false)
	seedNotification(t, "task_assigned", true)
	seedNotification(t, "task_completed", true)

	read := true
	list, err := GetNotifications(NotificationFilter{Read: &read})
	require.NoError(t, err)

	assert.EqualValues(t, 2, list.Total)
	for _, n := range list.Notifications {
		assert.True(t, n.Read)
	}
	// Independent of the read filter supplied
	assert.EqualValues(t, 3, list.UnreadCount)
}

func TestGetNotificationsFilterByReadAndType(t *testing.T) {
	setupTestDB(t)

	seedNotification(t, "task_assigned", false)
	seedNotification(t, "task_completed", false)
	seedNotification(t, "task_assigned", true)

	read := false
	list, err := GetNotifications(NotificationFilter{Read: &read, Type: "task_assigned"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, list.Total)
	require.Len(t, list.Notifications, 1)
	assert.False(t, list.Notifications[0].Read)
	assert.Equal(t, "task_assigned", list.Notifications[0].Type)
	assert.EqualValues(t, 2, list.UnreadCount)
}

func TestGetNotificationsPagination(t *testing.T) {
	setupTestDB(t)

	for i := 0; i < 5; i++ {
		seedNotification(t, "task_assigned", false)
	}

	list, err := GetNotifications(NotificationFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.EqualValues(t, 5, list.Total)
	assert.EqualValues(t, 5, list.UnreadCount)
}

func TestMarkAsReadIsIdempotent(t *testing.T) {
	setupTestDB(t)

	seeded := seedNotification(t, "task_assigned", false)

	first, err := MarkAsRead(seeded.ID)
	require.NoError(t, err)
	assert.True(t, first.Read)

	second, err := MarkAsRead(seeded.ID)
	require.NoError(t, err)
	assert.True(t, second.Read)
}

func TestMarkAsReadNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := MarkAsRead(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkAllAsRead(t *testing.T) {
	setupTestDB(t)

	seedNotification(t, "task_assigned", false)
	seedNotification(t, "task_completed", false)
	seedNotification(t, "task_assigned", true)

	count, err := MarkAllAsRead()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	var unread int64
	database.DB.Model(&models.Notification{}).Where("read = ?", false).Count(&unread)
	assert.Zero(t, unread)
}

func TestDeleteNotification(t *testing.T) {
	setupTestDB(t)

	seeded := seedNotification(t, "task_assigned", false)
	require.NoError(t, DeleteNotification(seeded.ID))

	assert.ErrorIs(t, DeleteNotification(seeded.ID), ErrNotFound)
}

func TestDeleteAllRead(t *testing.T) {
	setupTestDB(t)

	seedNotification(t, "task_assigned", true)
	seedNotification(t, "task_completed", true)
	kept := seedNotification(t, "task_assigned", false)

	count, err := DeleteAllRead()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	var remaining []models.Notification
	require.NoError(t, database.DB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}
