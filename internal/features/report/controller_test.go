package report

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wellness-analytics/internal/config"
	"wellness-analytics/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(repo ReportRepository) *fiber.App {
	app := fiber.New()
	NewReportApi(NewReportController(newTestService(repo), zap.NewNop()), &config.Config{}).Setup(app)
	return app
}

func request(t *testing.T, method, path, body string, roles ...string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := utils.GenerateToken("user-3", roles, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCreateReportEndpoint(t *testing.T) {
	app := newTestApp(NewMockReportRepository())

	resp, err := app.Test(request(t, "POST", "/api/analytics/reports", `{"scope":"ORG","metrics":"Goal Status","generatedDate":"1999-01-01"}`, "MANAGER"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"reportId":1,"scope":"ORG","metrics":"Goal Status","generatedDate":"2026-03-14"}`, readBody(t, resp))
}

func TestCreateReportEndpointRejectsInvalid(t *testing.T) {
	app := newTestApp(NewMockReportRepository())

	resp, err := app.Test(request(t, "POST", "/api/analytics/reports", `{"metrics":"Goal Status"}`, "ADMIN"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(request(t, "POST", "/api/analytics/reports", `{"scope":`, "ADMIN"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetReportEndpointNotFound(t *testing.T) {
	app := newTestApp(NewMockReportRepository())

	resp, err := app.Test(request(t, "GET", "/api/analytics/reports/42", "", "ADMIN"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Report not found with id 42"}`, readBody(t, resp))

	resp, err = app.Test(request(t, "GET", "/api/analytics/reports/abc", "", "ADMIN"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateReportEndpoint(t *testing.T) {
	repo := NewMockReportRepository(Report{ReportID: 2, Scope: ScopeOrg, Metrics: "Goal Status", GeneratedDate: mustDate("2026-01-05")})
	app := newTestApp(repo)

	resp, err := app.Test(request(t, "PUT", "/api/analytics/reports/2", `{"scope":"MANAGER","metrics":"Team Size"}`, "MANAGER"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"reportId":2,"scope":"MANAGER","metrics":"Team Size","generatedDate":"2026-01-05"}`, readBody(t, resp))

	resp, err = app.Test(request(t, "PUT", "/api/analytics/reports/3", `{"scope":"MANAGER","metrics":"Team Size"}`, "MANAGER"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 1, repo.Updates)
}

func TestDeleteReportEndpoint(t *testing.T) {
	repo := NewMockReportRepository(Report{ReportID: 1, Scope: ScopeOrg, Metrics: "Goal Status"})
	app := newTestApp(repo)

	resp, err := app.Test(request(t, "DELETE", "/api/analytics/reports/1", "", "MANAGER"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Len(t, repo.Reports, 1)

	resp, err = app.Test(request(t, "DELETE", "/api/analytics/reports/1", "", "ADMIN"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Report deleted successfully", readBody(t, resp))
	assert.Empty(t, repo.Reports)
}

func TestListReportsEndpoint(t *testing.T) {
	app := newTestApp(NewMockReportRepository())

	resp, err := app.Test(request(t, "GET", "/api/analytics/reports", "", "ADMIN"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, readBody(t, resp))
}

func TestExportEndpoint(t *testing.T) {
	app := newTestApp(exportRepo())

	resp, err := app.Test(request(t, "GET", "/api/analytics/reports/export?format=csv", "", "MANAGER"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reports_20260314_093000.csv")

	resp, err = app.Test(request(t, "GET", "/api/analytics/reports/export?format=pdf", "", "MANAGER"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReportEndpointsRequireAuth(t *testing.T) {
	app := newTestApp(NewMockReportRepository())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/analytics/reports", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestStoreFailureIsNotExposed(t *testing.T) {
	repo := NewMockReportRepository(Report{ReportID: 1, Scope: ScopeOrg, Metrics: "Goal Status"})
	repo.Err = errors.New(`pq: password authentication failed for user "wellness_admin" at 10.0.3.7`)
	app := newTestApp(repo)

	for _, req := range []*http.Request{
		request(t, "GET", "/api/analytics/reports", "", "ADMIN"),
		request(t, "GET", "/api/analytics/reports/1", "", "ADMIN"),
		request(t, "POST", "/api/analytics/reports", `{"scope":"ORG","metrics":"Goal Status"}`, "ADMIN"),
		request(t, "DELETE", "/api/analytics/reports/1", "", "ADMIN"),
	} {
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode, req.URL.Path)

		body := readBody(t, resp)
		assert.JSONEq(t, `{"error":"Internal server error"}`, body)
		assert.NotContains(t, body, "wellness_admin")
	}
}
