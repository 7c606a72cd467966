package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
)

// setupAnalyticsDB wires an in-memory database for the white-box
// aggregation tests; unlike the endpoint harness it needs no routes.
func setupAnalyticsDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.Task{},
		&models.TimeEntry{},
		&models.Activity{},
	))

	database.DB = db
	return db
}

func TestActivityTrendAlwaysFourteenBuckets(t *testing.T) {
	setupAnalyticsDB(t)

	now := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)
	buckets, err := computeActivityTrend(now)
	require.NoError(t, err)
	require.Len(t, buckets, trendDays)

	// Chronological, all zero on an empty database
	assert.Equal(t, "2026-08-18", buckets[0].Date)
	assert.Equal(t, "2026-08-31", buckets[trendDays-1].Date)
	for i, bucket := range buckets {
		assert.Zero(t, bucket.Count)
		if i > 0 {
			assert.Greater(t, bucket.Date, buckets[i-1].Date)
		}
	}
}

func TestActivityTrendCountsPerDay(t *testing.T) {
	db := setupAnalyticsDB(t)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())

	insert := func(createdAt time.Time) {
		activity := models.Activity{
			Type:        models.ActivityCreated,
			EntityType:  models.EntityClient,
			EntityID:    uuid.New(),
			EntityName:  "Acme GmbH",
			Description: `Kunde "Acme GmbH" wurde erstellt`,
			CreatedAt:   createdAt,
		}
		require.NoError(t, db.Create(&activity).Error)
	}

	insert(today)
	insert(today)
	insert(today.AddDate(0, 0, -3))
	// Outside the window, must not count
	insert(today.AddDate(0, 0, -20))

	buckets, err := computeActivityTrend(now)
	require.NoError(t, err)
	require.Len(t, buckets, trendDays)

	var total int64
	for _, bucket := range buckets {
		total += bucket.Count
	}
	assert.EqualValues(t, 3, total)
	assert.EqualValues(t, 2, buckets[trendDays-1].Count)
	assert.EqualValues(t, 1, buckets[trendDays-4].Count)
}

func TestBudgetVsTimeSumsCompletedEntries(t *testing.T) {
	db := setupAnalyticsDB(t)

	client := models.Client{Name: "Acme GmbH", Email: "info@acme.de"}
	require.NoError(t, db.Create(&client).Error)
	project := models.Project{ClientID: client.ID, Name: "Relaunch", Budget: 12000}
	require.NoError(t, db.Create(&project).Error)

	// 1.5h completed, 1h completed, 2h not completed
	for _, entry := range []struct {
		seconds   int
		completed bool
	}{{5400, true}, {3600, true}, {7200, false}} {
		require.NoError(t, db.Create(&models.TimeEntry{
			ProjectID:       project.ID,
			DurationSeconds: entry.seconds,
			Completed:       entry.completed,
		}).Error)
	}

	rows, err := computeBudgetVsTime()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Relaunch", rows[0].ProjectName)
	assert.Equal(t, 12000.0, rows[0].Budget)
	assert.Equal(t, 2.5, rows[0].Hours)
}

func TestTopClientsRankingTruncated(t *testing.T) {
	db := setupAnalyticsDB(t)

	// Seven clients with descending project counts
	for i := 0; i < 7; i++ {
		client := models.Client{
			Name:  fmt.Sprintf("Kunde %d", i),
			Email: fmt.Sprintf("kunde%d@beispiel.de", i),
		}
		require.NoError(t, db.Create(&client).Error)
		for j := 0; j < 7-i; j++ {
			require.NoError(t, db.Create(&models.Project{
				ClientID: client.ID,
				Name:     "Projekt",
			}).Error)
		}
	}

	ranks, err := computeTopClients()
	require.NoError(t, err)
	require.Len(t, ranks, rankingSize)
	assert.Equal(t, "Kunde 0", ranks[0].ClientName)
	assert.EqualValues(t, 7, ranks[0].ProjectCount)
	for i := 1; i < len(ranks); i++ {
		assert.LessOrEqual(t, ranks[i].ProjectCount, ranks[i-1].ProjectCount)
	}
}

func TestTeamPerformanceRanksByCompletionRate(t *testing.T) {
	db := setupAnalyticsDB(t)

	maria := models.User{Name: "Maria", Email: "maria@studio.de"}
	jonas := models.User{Name: "Jonas", Email: "jonas@studio.de"}
	require.NoError(t, db.Create(&maria).Error)
	require.NoError(t, db.Create(&jonas).Error)

	client := models.Client{Name: "Acme GmbH", Email: "info@acme.de"}
	require.NoError(t, db.Create(&client).Error)
	project := models.Project{ClientID: client.ID, Name: "Relaunch"}
	require.NoError(t, db.Create(&project).Error)

	addTask := func(assignee uuid.UUID, status string) {
		require.NoError(t, db.Create(&models.Task{
			ProjectID:  project.ID,
			Title:      "Aufgabe",
			Status:     status,
			AssigneeID: &assignee,
		}).Error)
	}
	// Maria: 2/2 done; Jonas: 1/3 done
	addTask(maria.ID, models.TaskDone)
	addTask(maria.ID, models.TaskDone)
	addTask(jonas.ID, models.TaskDone)
	addTask(jonas.ID, models.TaskTodo)
	addTask(jonas.ID, models.TaskInProgress)

	ranks, err := computeTeamPerformance()
	require.NoError(t, err)
	require.Len(t, ranks, 2)
	assert.Equal(t, "Maria", ranks[0].UserName)
	assert.Equal(t, 1.0, ranks[0].CompletionRate)
	assert.Equal(t, "Jonas", ranks[1].UserName)
	assert.InDelta(t, 1.0/3.0, ranks[1].CompletionRate, 0.0001)
}
