package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
)

type dashboardStats struct {
	TotalClients        int64   `json:"totalClients"`
	ActiveProjects      int64   `json:"activeProjects"`
	OpenTasks           int64   `json:"openTasks"`
	CompletedTasks      int64   `json:"completedTasks"`
	TotalNotes          int64   `json:"totalNotes"`
	HoursLogged         float64 `json:"hoursLogged"`
	UnreadNotifications int64   `json:"unreadNotifications"`
}

func roundHours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}

// GetStats returns the dashboard counters. The sub-queries are
// independent reads and run concurrently.
func GetStats(c *fiber.Ctx) error {
	var stats dashboardStats

	var g errgroup.Group
	g.Go(func() error {
		return database.DB.Model(&models.Client{}).Count(&stats.TotalClients).Error
	})
	g.Go(func() error {
		return database.DB.Model(&models.Project{}).
			Where("status IN ?", []string{models.ProjectPlanning, models.ProjectInProgress, models.ProjectReview}).
			Count(&stats.ActiveProjects).Error
	})
	g.Go(func() error {
		return database.DB.Model(&models.Task{}).
			Where("status != ?", models.TaskDone).
			Count(&stats.OpenTasks).Error
	})
	g.Go(func() error {
		return database.DB.Model(&models.Task{}).
			Where("status = ?", models.TaskDone).
			Count(&stats.CompletedTasks).Error
	})
	g.Go(func() error {
		return database.DB.Model(&models.Note{}).Count(&stats.TotalNotes).Error
	})
	g.Go(func() error {
		var seconds int64
		err := database.DB.Model(&models.TimeEntry{}).
			Where("completed = ?", true).
			Select("COALESCE(SUM(duration_seconds), 0)").
			Scan(&seconds).Error
		stats.HoursLogged = roundHours(seconds)
		return err
	})
	g.Go(func() error {
		return database.DB.Model(&models.Notification{}).
			Where("read = ?", false).
			Count(&stats.UnreadNotifications).Error
	})

	if err := g.Wait(); err != nil {
		return respondServerError(c, err, "Statistiken konnten nicht geladen werden")
	}
	return respondData(c, fiber.StatusOK, stats)
}
