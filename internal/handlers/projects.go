package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
	"github.com/mvogel/agentur-crm/internal/services"
)

func GetProjects(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Project{}).Preload("Client")

	if clientID := c.Query("clientId"); clientID != "" {
		parsed, err := uuid.Parse(clientID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Kunden-ID")
		}
		query = query.Where("client_id = ?", parsed)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return respondServerError(c, err, "Projekte konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, projects)
}

func GetProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Projekt-ID")
	}

	var project models.Project
	if err := database.DB.
		Preload("Client").
		Preload("Members.User").
		Preload("Tasks").
		First(&project, "id = ?", projectID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeProjectNotFound, "Projekt nicht gefunden")
	}
	return respondData(c, fiber.StatusOK, project)
}

func CreateProject(c *fiber.Ctx) error {
	var req models.CreateProjectRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	var client models.Client
	if err := database.DB.First(&client, "id = ?", req.ClientID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeClientNotFound, "Kunde nicht gefunden")
	}

	status := req.Status
	if status == "" {
		status = models.ProjectPlanning
	}

	project := models.Project{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := database.DB.Create(&project).Error; err != nil {
		return respondServerError(c, err, "Projekt konnte nicht erstellt werden")
	}

	database.DB.Preload("Client").First(&project, project.ID)

	services.LogCreated(models.EntityProject, project.ID, project.Name, nil, "")

	return respondData(c, fiber.StatusCreated, project)
}

func UpdateProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Projekt-ID")
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeProjectNotFound, "Projekt nicht gefunden")
	}

	var req models.UpdateProjectRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	oldStatus := project.Status
	changes := []string{}

	if req.Name != nil && *req.Name != project.Name {
		project.Name = *req.Name
		changes = append(changes, "name")
	}
	if req.Description != nil && *req.Description != project.Description {
		project.Description = *req.Description
		changes = append(changes, "description")
	}
	if req.Budget != nil && *req.Budget != project.Budget {
		project.Budget = *req.Budget
		changes = append(changes, "budget")
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
		changes = append(changes, "startDate")
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
		changes = append(changes, "endDate")
	}
	statusChanged := req.Status != nil && *req.Status != oldStatus
	if statusChanged {
		project.Status = *req.Status
	}

	if err := database.DB.Save(&project).Error; err != nil {
		return respondServerError(c, err, "Projekt konnte nicht aktualisiert werden")
	}

	if statusChanged {
		services.LogStatusChanged(models.EntityProject, project.ID, project.Name, oldStatus, project.Status, nil, "")
		if project.Status == models.ProjectCompleted {
			notify(models.CreateNotificationRequest{
				Type:      "project_completed",
				Title:     "Projekt abgeschlossen",
				Message:   "Das Projekt \"" + project.Name + "\" wurde abgeschlossen",
				Priority:  models.PriorityHigh,
				ProjectID: &project.ID,
			})
		}
	}
	if len(changes) > 0 {
		services.LogUpdated(models.EntityProject, project.ID, project.Name, nil, "", changes...)
	}

	return respondData(c, fiber.StatusOK, project)
}

func DeleteProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Projekt-ID")
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeProjectNotFound, "Projekt nicht gefunden")
	}

	if err := database.DB.Delete(&project).Error; err != nil {
		return respondServerError(c, err, "Projekt konnte nicht gelöscht werden")
	}

	services.LogDeleted(models.EntityProject, project.ID, project.Name, nil, "")

	return c.SendStatus(fiber.StatusNoContent)
}

func GetProjectMembers(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Projekt-ID")
	}

	var members []models.ProjectMember
	if err := database.DB.Where("project_id = ?", projectID).
		Preload("User").
		Find(&members).Error; err != nil {
		return respondServerError(c, err, "Mitglieder konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, members)
}

func AddProjectMember(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Projekt-ID")
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeProjectNotFound, "Projekt nicht gefunden")
	}

	var req models.AddMemberRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, CodeUserNotFound, "Benutzer nicht gefunden")
	}

	var existing int64
	database.DB.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, req.UserID).
		Count(&existing)
	if existing > 0 {
		return respondError(c, fiber.StatusBadRequest, CodeMemberExists, "Benutzer ist bereits Mitglied")
	}

	role := req.Role
	if role == "" {
		role = "member"
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      role,
	}
	if err := database.DB.Create(&member).Error; err != nil {
		return respondServerError(c, err, "Mitglied konnte nicht hinzugefügt werden")
	}

	database.DB.Preload("User").First(&member, member.ID)

	services.LogUpdated(models.EntityProject, project.ID, project.Name, nil, "", "members")
	notify(models.CreateNotificationRequest{
		Type:      "member_added",
		Title:     "Neues Projektmitglied",
		Message:   user.Name + " wurde zum Projekt \"" + project.Name + "\" hinzugefügt",
		ProjectID: &project.ID,
	})

	return respondData(c, fiber.StatusCreated, member)
}

func RemoveProjectMember(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Projekt-ID")
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, CodeValidation, "Ungültige Benutzer-ID")
	}

	result := database.DB.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{})
	if result.Error != nil {
		return respondServerError(c, result.Error, "Mitglied konnte nicht entfernt werden")
	}
	if result.RowsAffected == 0 {
		return respondError(c, fiber.StatusNotFound, CodeMemberNotFound, "Mitglied nicht gefunden")
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", projectID).Error; err == nil {
		services.LogUpdated(models.EntityProject, project.ID, project.Name, nil, "", "members")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
