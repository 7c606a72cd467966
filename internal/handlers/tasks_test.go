package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/handlers"
	"github.com/mvogel/agentur-crm/internal/models"
)

func TestTaskStatusChangeLogsAndNotifies(t *testing.T) {
	app := setupApp(t)

	client := createTestClient(t, app, "Acme GmbH", "info@acme.de")
	project := createTestProject(t, app, client, "Relaunch")

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/tasks", fiber.Map{
		"projectId": project.ID,
		"title":     "Wireframes",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var task models.Task
	decodeData(t, env, &task)
	assert.Equal(t, models.TaskTodo, task.Status)

	resp, env = doJSON(t, app, fiber.MethodPatch, "/api/tasks/"+task.ID.String()+"/status", fiber.Map{
		"status": "DONE",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, env, &task)
	assert.Equal(t, models.TaskDone, task.Status)

	var activities []models.Activity
	require.NoError(t, database.DB.Where("type = ?", models.ActivityStatusChanged).Find(&activities).Error)
	require.Len(t, activities, 1)
	assert.Contains(t, activities[0].Description, "TODO → DONE")
	assert.Equal(t, "TODO", activities[0].Metadata["oldStatus"])
	assert.Equal(t, "DONE", activities[0].Metadata["newStatus"])

	var notifications []models.Notification
	require.NoError(t, database.DB.Where("type = ?", "task_completed").Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].Read)
}

func TestTaskStatusChangeSucceedsWhenNotificationStoreFails(t *testing.T) {
	app := setupApp(t)

	client := createTestClient(t, app, "Acme GmbH", "info@acme.de")
	project := createTestProject(t, app, client, "Relaunch")

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/tasks", fiber.Map{
		"projectId": project.ID,
		"title":     "Wireframes",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var task models.Task
	decodeData(t, env, &task)

	// Notifications are a best-effort side channel, same as the audit log
	require.NoError(t, database.DB.Migrator().DropTable(&models.Notification{}))

	resp, env = doJSON(t, app, fiber.MethodPatch, "/api/tasks/"+task.ID.String()+"/status", fiber.Map{
		"status": "DONE",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var activities []models.Activity
	require.NoError(t, database.DB.Where("type = ?", models.ActivityStatusChanged).Find(&activities).Error)
	assert.Len(t, activities, 1)
}

func TestTaskStatusUnchangedLogsNothing(t *testing.T) {
	app := setupApp(t)

	client := createTestClient(t, app, "Acme GmbH", "info@acme.de")
	project := createTestProject(t, app, client, "Relaunch")

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/tasks", fiber.Map{
		"projectId": project.ID,
		"title":     "Wireframes",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var task models.Task
	decodeData(t, env, &task)

	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/tasks/"+task.ID.String()+"/status", fiber.Map{
		"status": "TODO",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Activity{}).
		Where("type = ?", models.ActivityStatusChanged).
		Count(&count)
	assert.Zero(t, count)
}

func TestAssignTaskNotifiesAssignee(t *testing.T) {
	app := setupApp(t)

	client := createTestClient(t, app, "Acme GmbH", "info@acme.de")
	project := createTestProject(t, app, client, "Relaunch")
	user := createTestUser(t, app, "Maria", "maria@studio.de")

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/tasks", fiber.Map{
		"projectId": project.ID,
		"title":     "Wireframes",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var task models.Task
	decodeData(t, env, &task)

	resp, env = doJSON(t, app, fiber.MethodPatch, "/api/tasks/"+task.ID.String()+"/assign", fiber.Map{
		"assigneeId": user.ID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, env, &task)
	require.NotNil(t, task.AssigneeID)
	assert.Equal(t, user.ID, *task.AssigneeID)

	var activities []models.Activity
	require.NoError(t, database.DB.Where("type = ?", models.ActivityAssigned).Find(&activities).Error)
	require.Len(t, activities, 1)
	assert.Contains(t, activities[0].Description, "Maria")

	var notifications []models.Notification
	require.NoError(t, database.DB.Where("type = ?", "task_assigned").Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.PriorityHigh, notifications[0].Priority)
}

func TestCreateTaskUnknownProject(t *testing.T) {
	app := setupApp(t)

	resp, env := doJSON(t, app, fiber.MethodPost, "/api/tasks", fiber.Map{
		"projectId": "00000000-0000-0000-0000-000000000001",
		"title":     "Wireframes",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, handlers.CodeProjectNotFound, env.Code)
}
