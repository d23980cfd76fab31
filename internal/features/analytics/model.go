package analytics

import (
	"wellness-analytics/internal/features/report"
)

// Metric keys, also used as CLI names and telemetry attributes.
const (
	MetricParticipationStatus      = "participation-status"
	MetricDepartmentParticipation  = "department-participation"
	MetricProgramParticipation     = "program-participation"
	MetricCategoryParticipation    = "category-participation"
	MetricMonthlyTrend             = "monthly-trend"
	MetricChallengeCompletion      = "challenge-completion"
	MetricDepartmentEngagement     = "department-engagement"
	MetricManagerTeamSize          = "manager-team-size"
	MetricActivityCompletionStatus = "activity-completion-status"
	MetricGoalStatus               = "goal-status"
	MetricProgramStatus            = "program-status"
)

// Definition binds a metric to its audit scope, series label and route.
// AuditName overrides the metric name written to the audit log; when empty
// the label is used.
type Definition struct {
	Key       string
	Scope     string
	Label     string
	Path      string
	AuditName string
}

// AuditMetric is the metric name recorded in the report audit log.
func (d Definition) AuditMetric() string {
	if d.AuditName != "" {
		return d.AuditName
	}
	return d.Label
}

var Definitions = []Definition{
	{Key: MetricParticipationStatus, Scope: report.ScopeOrg, Label: "Participation Status", Path: "/participation/status"},
	{Key: MetricDepartmentParticipation, Scope: report.ScopeManager, Label: "Department Participation", Path: "/participation/department"},
	{Key: MetricProgramParticipation, Scope: report.ScopeOrg, Label: "Program Participation", Path: "/participation/program"},
	{Key: MetricCategoryParticipation, Scope: report.ScopeOrg, Label: "Category Participation", Path: "/participation/category"},
	{Key: MetricMonthlyTrend, Scope: report.ScopeOrg, Label: "Monthly Trend", Path: "/trend/monthly"},
	{Key: MetricChallengeCompletion, Scope: report.ScopeOrg, Label: "Challenge Completion", Path: "/challenge/completion"},
	{Key: MetricDepartmentEngagement, Scope: report.ScopeOrg, Label: "Department Engagement", Path: "/engagement/department"},
	{Key: MetricManagerTeamSize, Scope: report.ScopeManager, Label: "Manager Team Size", Path: "/manager/team-size", AuditName: "Team Size"},
	{Key: MetricActivityCompletionStatus, Scope: report.ScopeOrg, Label: "Activity Completion Status", Path: "/activity/completion-status", AuditName: "Completion Status"},
	{Key: MetricGoalStatus, Scope: report.ScopeOrg, Label: "Goal Status", Path: "/goal/status"},
	{Key: MetricProgramStatus, Scope: report.ScopeOrg, Label: "Program Status", Path: "/program/status"},
}

// Lookup finds a definition by key.
func Lookup(key string) (Definition, bool) {
	for _, def := range Definitions {
		if def.Key == key {
			return def, true
		}
	}
	return Definition{}, false
}
