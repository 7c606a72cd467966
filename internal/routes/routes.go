package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvogel/agentur-crm/internal/handlers"
)

func Setup(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	clients := api.Group("/clients")
	clients.Get("/", handlers.GetClients)
	clients.Post("/", handlers.CreateClient)
	clients.Get("/:id", handlers.GetClient)
	clients.Put("/:id", handlers.UpdateClient)
	clients.Delete("/:id", handlers.DeleteClient)

	projects := api.Group("/projects")
	projects.Get("/", handlers.GetProjects)
	projects.Post("/", handlers.CreateProject)
	projects.Get("/:id", handlers.GetProject)
	projects.Put("/:id", handlers.UpdateProject)
	projects.Delete("/:id", handlers.DeleteProject)
	projects.Get("/:id/members", handlers.GetProjectMembers)
	projects.Post("/:id/members", handlers.AddProjectMember)
	projects.Delete("/:id/members/:userId", handlers.RemoveProjectMember)

	tasks := api.Group("/tasks")
	tasks.Get("/", handlers.GetTasks)
	tasks.Post("/", handlers.CreateTask)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Put("/:id", handlers.UpdateTask)
	tasks.Patch("/:id/status", handlers.UpdateTaskStatus)
	tasks.Patch("/:id/assign", handlers.AssignTask)
	tasks.Delete("/:id", handlers.DeleteTask)

	notes := api.Group("/notes")
	notes.Get("/", handlers.GetNotes)
	notes.Post("/", handlers.CreateNote)
	notes.Get("/:id", handlers.GetNote)
	notes.Put("/:id", handlers.UpdateNote)
	notes.Delete("/:id", handlers.DeleteNote)

	timeEntries := api.Group("/time-entries")
	timeEntries.Get("/", handlers.GetTimeEntries)
	timeEntries.Post("/", handlers.CreateTimeEntry)
	timeEntries.Delete("/:id", handlers.DeleteTimeEntry)

	attachments := api.Group("/attachments")
	attachments.Get("/", handlers.GetAttachments)
	attachments.Post("/", handlers.CreateAttachment)
	attachments.Delete("/:id", handlers.DeleteAttachment)

	users := api.Group("/users")
	users.Get("/", handlers.GetUsers)
	users.Post("/", handlers.CreateUser)
	users.Get("/:id", handlers.GetUser)

	api.Get("/activities", handlers.GetActivities)

	notifications := api.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Post("/", handlers.CreateNotificationHandler)
	// Fixed paths before the :id routes so they are not shadowed
	notifications.Patch("/mark-all-read", handlers.MarkAllNotificationsRead)
	notifications.Delete("/read", handlers.DeleteReadNotifications)
	notifications.Patch("/:id/read", handlers.MarkNotificationRead)
	notifications.Delete("/:id", handlers.DeleteNotification)

	api.Get("/stats", handlers.GetStats)
	api.Get("/analytics", handlers.GetAnalytics)
	api.Get("/search/global", handlers.GlobalSearch)
}
