package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
	"github.com/mvogel/agentur-crm/internal/services"
)

func GetTasks(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Task{}).Preload("Assignee")

	if projectID := c.Query("projectId"); projectID != "" {
		parsed, err := uuid.Parse(projectID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Projekt-ID")
		}
		query = query.Where("project_id = ?", parsed)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if assigneeID := c.Query("assigneeId"); assigneeID != "" {
		parsed, err := uuid.Parse(assigneeID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Benutzer-ID")
		}
		query = query.Where("assignee_id = ?", parsed)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return respondServerError(c, err, "Aufgaben konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, tasks)
}

func GetTask(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Aufgaben-ID")
	}

	var task models.Task
	if err := database.DB.Preload("Project").Preload("Assignee").
		First(&task, "id = ?", taskID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeTaskNotFound, "Aufgabe nicht gefunden")
	}
	return respondData(c, fiber.StatusOK, task)
}

func CreateTask(c *fiber.Ctx) error {
	var req models.CreateTaskRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", req.ProjectID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeProjectNotFound, "Projekt nicht gefunden")
	}

	status := req.Status
	if status == "" {
		status = models.TaskTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = "MEDIUM"
	}

	task := models.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		return respondServerError(c, err, "Aufgabe konnte nicht erstellt werden")
	}

	services.LogCreated(models.EntityTask, task.ID, task.Title, nil, "")

	return respondData(c, fiber.StatusCreated, task)
}

func UpdateTask(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Aufgaben-ID")
	}

	var task models.Task
	if err := database.DB.First(&task, "id = ?", taskID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeTaskNotFound, "Aufgabe nicht gefunden")
	}

	var req models.UpdateTaskRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	changes := []string{}
	if req.Title != nil && *req.Title != task.Title {
		task.Title = *req.Title
		changes = append(changes, "title")
	}
	if req.Description != nil && *req.Description != task.Description {
		task.Description = *req.Description
		changes = append(changes, "description")
	}
	if req.Priority != nil && *req.Priority != task.Priority {
		task.Priority = *req.Priority
		changes = append(changes, "priority")
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
		changes = append(changes, "dueDate")
	}

	if err := database.DB.Save(&task).Error; err != nil {
		return respondServerError(c, err, "Aufgabe konnte nicht aktualisiert werden")
	}

	services.LogUpdated(models.EntityTask, task.ID, task.Title, nil, "", changes...)

	return respondData(c, fiber.StatusOK, task)
}

func UpdateTaskStatus(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Aufgaben-ID")
	}

	var task models.Task
	if err := database.DB.First(&task, "id = ?", taskID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeTaskNotFound, "Aufgabe nicht gefunden")
	}

	var req models.UpdateTaskStatusRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	oldStatus := task.Status
	if req.Status == oldStatus {
		return respondData(c, fiber.StatusOK, task)
	}

	task.Status = req.Status
	if err := database.DB.Save(&task).Error; err != nil {
		return respondServerError(c, err, "Status konnte nicht geändert werden")
	}

	services.LogStatusChanged(models.EntityTask, task.ID, task.Title, oldStatus, task.Status, nil, "")

	if task.Status == models.TaskDone {
		notify(models.CreateNotificationRequest{
			Type:      "task_completed",
			Title:     "Aufgabe erledigt",
			Message:   "Die Aufgabe \"" + task.Title + "\" wurde erledigt",
			ProjectID: &task.ProjectID,
			TaskID:    &task.ID,
		})
	}

	return respondData(c, fiber.StatusOK, task)
}

func AssignTask(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Aufgaben-ID")
	}

	var task models.Task
	if err := database.DB.First(&task, "id = ?", taskID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeTaskNotFound, "Aufgabe nicht gefunden")
	}

	var req models.AssignTaskRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	var assignee models.User
	if err := database.DB.First(&assignee, "id = ?", req.AssigneeID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeUserNotFound, "Benutzer nicht gefunden")
	}

	task.AssigneeID = &assignee.ID
	if err := database.DB.Save(&task).Error; err != nil {
		return respondServerError(c, err, "Aufgabe konnte nicht zugewiesen werden")
	}

	services.LogAssigned(models.EntityTask, task.ID, task.Title, assignee.Name, nil, "")
	notify(models.CreateNotificationRequest{
		Type:      "task_assigned",
		Title:     "Neue Aufgabe zugewiesen",
		Message:   "Dir wurde die Aufgabe \"" + task.Title + "\" zugewiesen",
		Priority:  models.PriorityHigh,
		ProjectID: &task.ProjectID,
		TaskID:    &task.ID,
	})

	return respondData(c, fiber.StatusOK, task)
}

func DeleteTask(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Aufgaben-ID")
	}

	var task models.Task
	if err := database.DB.First(&task, "id = ?", taskID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeTaskNotFound, "Aufgabe nicht gefunden")
	}

	if err := database.DB.Delete(&task).Error; err != nil {
		return respondServerError(c, err, "Aufgabe konnte nicht gelöscht werden")
	}

	services.LogDeleted(models.EntityTask, task.ID, task.Title, nil, "")

	return c.SendStatus(fiber.StatusNoContent)
}
