package system

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"wellness-analytics/internal/config"
	"wellness-analytics/internal/database"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthApp(t *testing.T, pingErr error) *fiber.App {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectPing().WillReturnError(pingErr)

	app := fiber.New()
	NewHealthApi(NewHealthController(&database.SQLDB{DB: db, Dialect: database.Postgres{}}, &database.MongodbDB{})).Setup(app)
	return app
}

func TestHealthCheck(t *testing.T) {
	app := newHealthApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(body))
}

func TestReadyReportsDatabase(t *testing.T) {
	resp, err := newHealthApp(t, nil).Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"sql":"up"}`, string(body))

	resp, err = newHealthApp(t, errors.New("connection refused")).Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestDebugRoutesHiddenInProduction(t *testing.T) {
	app := fiber.New()
	NewDebugApi(NewDebugController(), &config.Config{Environment: "production", SkipAuth: true}).Setup(app)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/debug/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	app = fiber.New()
	NewDebugApi(NewDebugController(), &config.Config{Environment: "development", SkipAuth: true}).Setup(app)
	resp, err = app.Test(httptest.NewRequest("GET", "/api/debug/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"user_id":"dev-admin-id","roles":["ADMIN"]}`, string(body))
}
