package analytics

import (
	"context"

	"wellness-analytics/internal/config"
	"wellness-analytics/internal/features/series"
	"wellness-analytics/internal/telemetry"

	"go.uber.org/zap"
)

// MockSources implements every metric repository from canned rows.
type MockSources struct {
	Rows  map[string][]series.Row
	Err   error
	Calls []string
}

func (m *MockSources) rows(name string) ([]series.Row, error) {
	m.Calls = append(m.Calls, name)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rows[name], nil
}

func (m *MockSources) ParticipationStatus(ctx context.Context) ([]series.Row, error) {
	return m.rows("ParticipationStatus")
}
func (m *MockSources) ParticipationByDepartment(ctx context.Context) ([]series.Row, error) {
	return m.rows("ParticipationByDepartment")
}
func (m *MockSources) ParticipationByProgram(ctx context.Context) ([]series.Row, error) {
	return m.rows("ParticipationByProgram")
}
func (m *MockSources) ParticipationByCategory(ctx context.Context) ([]series.Row, error) {
	return m.rows("ParticipationByCategory")
}
func (m *MockSources) MonthlyTrend(ctx context.Context) ([]series.Row, error) {
	return m.rows("MonthlyTrend")
}
func (m *MockSources) CompletionStatus(ctx context.Context) ([]series.Row, error) {
	return m.rows("CompletionStatus")
}
func (m *MockSources) EngagementByDepartment(ctx context.Context) ([]series.Row, error) {
	return m.rows("EngagementByDepartment")
}
func (m *MockSources) GoalStatus(ctx context.Context) ([]series.Row, error) {
	return m.rows("GoalStatus")
}
func (m *MockSources) ChallengeCompletion(ctx context.Context) ([]series.Row, error) {
	return m.rows("ChallengeCompletion")
}
func (m *MockSources) ManagerTeamSize(ctx context.Context) ([]series.Row, error) {
	return m.rows("ManagerTeamSize")
}
func (m *MockSources) ProgramStatusCount(ctx context.Context) ([]series.Row, error) {
	return m.rows("ProgramStatusCount")
}

type loggedMetric struct {
	Scope  string
	Metric string
}

type MockAuditor struct {
	Logged []loggedMetric
	Err    error
}

func (m *MockAuditor) LogMetric(ctx context.Context, scope, metric string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Logged = append(m.Logged, loggedMetric{Scope: scope, Metric: metric})
	return nil
}

func newTestService(src *MockSources, auditor Auditor, audit bool) AnalyticsService {
	return NewAnalyticsService(
		NewSources(src, src, src, src, src),
		auditor,
		&config.Config{AuditMetrics: audit},
		telemetry.NewNoop(),
		zap.NewNop(),
	)
}
