package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/models"
	"github.com/mvogel/agentur-crm/internal/routes"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func setupApp(t *testing.T) *fiber.App {
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
		&models.ProjectMember{},
		&models.Task{},
		&models.Note{},
		&models.TimeEntry{},
		&models.Attachment{},
		&models.Activity{},
		&models.Notification{},
	))
	database.DB = db

	app := fiber.New()
	routes.Setup(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		json.Unmarshal(raw, &env)
	}
	return resp, env
}

func decodeData(t *testing.T, env envelope, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func clientName(i int) string {
	return fmt.Sprintf("Kunde %d", i)
}

func clientEmail(i int) string {
	return fmt.Sprintf("kunde%d@beispiel.de", i)
}

func createTestClient(t *testing.T, app *fiber.App, name, email string) models.Client {
	t.Helper()
	resp, env := doJSON(t, app, fiber.MethodPost, "/api/clients", fiber.Map{
		"name":  name,
		"email": email,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var client models.Client
	decodeData(t, env, &client)
	return client
}

func createTestProject(t *testing.T, app *fiber.App, client models.Client, name string) models.Project {
	t.Helper()
	resp, env := doJSON(t, app, fiber.MethodPost, "/api/projects", fiber.Map{
		"clientId": client.ID,
		"name":     name,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var project models.Project
	decodeData(t, env, &project)
	return project
}

func createTestUser(t *testing.T, app *fiber.App, name, email string) models.User {
	t.Helper()
	resp, env := doJSON(t, app, fiber.MethodPost, "/api/users", fiber.Map{
		"name":  name,
		"email": email,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var user models.User
	decodeData(t, env, &user)
	return user
}
