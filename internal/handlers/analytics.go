package handlers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
)

const (
	trendDays     = 14
	rankingSize   = 5
	budgetSamples = 10
)

type budgetVsTime struct {
	ProjectID   uuid.UUID `json:"projectId"`
	ProjectName string    `json:"projectName"`
	Budget      float64   `json:"budget"`
	Hours       float64   `json:"hours"`
}

type trendBucket struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type clientRank struct {
	ClientID     uuid.UUID `json:"clientId"`
	ClientName   string    `json:"clientName"`
	ProjectCount int64     `json:"projectCount"`
}

type userRank struct {
	UserID         uuid.UUID `json:"userId"`
	UserName       string    `json:"userName"`
	TaskCount      int64     `json:"taskCount"`
	CompletedCount int64     `json:"completedCount"`
	CompletionRate float64   `json:"completionRate"`
	Hours          float64   `json:"hours"`
}

// GetAnalytics computes the dashboard analytics. Every section
// tolerates an empty database and returns zero-filled structures.
func GetAnalytics(c *fiber.Ctx) error {
	budget, err := computeBudgetVsTime()
	if err != nil {
		return respondServerError(c, err, "Analysedaten konnten nicht geladen werden")
	}
	trend, err := computeActivityTrend(time.Now())
	if err != nil {
		return respondServerError(c, err, "Analysedaten konnten nicht geladen werden")
	}
	clients, err := computeTopClients()
	if err != nil {
		return respondServerError(c, err, "Analysedaten konnten nicht geladen werden")
	}
	team, err := computeTeamPerformance()
	if err != nil {
		return respondServerError(c, err, "Analysedaten konnten nicht geladen werden")
	}

	return respondData(c, fiber.StatusOK, fiber.Map{
		"budgetVsTime":    budget,
		"activityTrend":   trend,
		"topClients":      clients,
		"teamPerformance": team,
	})
}

func computeBudgetVsTime() ([]budgetVsTime, error) {
	var projects []models.Project
	if err := database.DB.Order("created_at DESC").Limit(budgetSamples).Find(&projects).Error; err != nil {
		return nil, err
	}

	result := make([]budgetVsTime, 0, len(projects))
	if len(projects) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	type projectSum struct {
		ProjectID uuid.UUID
		Seconds   int64
	}
	var sums []projectSum
	if err := database.DB.Model(&models.TimeEntry{}).
		Select("project_id, COALESCE(SUM(duration_seconds), 0) AS seconds").
		Where("completed = ? AND project_id IN ?", true, ids).
		Group("project_id").
		Scan(&sums).Error; err != nil {
		return nil, err
	}

	secondsByProject := make(map[uuid.UUID]int64, len(sums))
	for _, s := range sums {
		secondsByProject[s.ProjectID] = s.Seconds
	}

	for _, p := range projects {
		result = append(result, budgetVsTime{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Budget:      p.Budget,
			Hours:       roundHours(secondsByProject[p.ID]),
		})
	}
	return result, nil
}

// computeActivityTrend returns exactly trendDays buckets in
// chronological order. Days without activity stay at zero rather than
// going missing.
func computeActivityTrend(now time.Time) ([]trendBucket, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(trendDays - 1))

	buckets := make([]trendBucket, trendDays)
	index := make(map[string]int, trendDays)
	for i := 0; i < trendDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = trendBucket{Date: day}
		index[day] = i
	}

	var activities []models.Activity
	if err := database.DB.
		Where("created_at >= ?", start).
		Find(&activities).Error; err != nil {
		return nil, err
	}

	for _, activity := range activities {
		day := activity.CreatedAt.In(now.Location()).Format("2006-01-02")
		if i, ok := index[day]; ok {
			buckets[i].Count++
		}
	}
	return buckets, nil
}

func computeTopClients() ([]clientRank, error) {
	var clients []models.Client
	if err := database.DB.Find(&clients).Error; err != nil {
		return nil, err
	}

	type clientCount struct {
		ClientID uuid.UUID
		Count    int64
	}
	var counts []clientCount
	if err := database.DB.Model(&models.Project{}).
		Select("client_id, COUNT(*) AS count").
		Group("client_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	countByClient := make(map[uuid.UUID]int64, len(counts))
	for _, cc := range counts {
		countByClient[cc.ClientID] = cc.Count
	}

	ranks := make([]clientRank, 0, len(clients))
	for _, client := range clients {
		ranks = append(ranks, clientRank{
			ClientID:     client.ID,
			ClientName:   client.Name,
			ProjectCount: countByClient[client.ID],
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].ProjectCount > ranks[j].ProjectCount
	})
	if len(ranks) > rankingSize {
		ranks = ranks[:rankingSize]
	}
	return ranks, nil
}

func computeTeamPerformance() ([]userRank, error) {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		return nil, err
	}

	ranks := make([]userRank, 0, len(users))
	for _, user := range users {
		var taskCount, completedCount int64
		if err := database.DB.Model(&models.Task{}).
			Where("assignee_id = ?", user.ID).
			Count(&taskCount).Error; err != nil {
			return nil, err
		}
		if err := database.DB.Model(&models.Task{}).
			Where("assignee_id = ? AND status = ?", user.ID, models.TaskDone).
			Count(&completedCount).Error; err != nil {
			return nil, err
		}

		var seconds int64
		if err := database.DB.Model(&models.TimeEntry{}).
			Where("user_id = ? AND completed = ?", user.ID, true).
			Select("COALESCE(SUM(duration_seconds), 0)").
			Scan(&seconds).Error; err != nil {
			return nil, err
		}

		rank := userRank{
			UserID:         user.ID,
			UserName:       user.Name,
			TaskCount:      taskCount,
			CompletedCount: completedCount,
			Hours:          roundHours(seconds),
		}
		if taskCount > 0 {
			rank.CompletionRate = float64(completedCount) / float64(taskCount)
		}
		ranks = append(ranks, rank)
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].CompletionRate != ranks[j].CompletionRate {
			return ranks[i].CompletionRate > ranks[j].CompletionRate
		}
		return ranks[i].Hours > ranks[j].Hours
	})
	if len(ranks) > rankingSize {
		ranks = ranks[:rankingSize]
	}
	return ranks, nil
}
