package analytics

import (
	"context"
	"fmt"

	"wellness-analytics/internal/config"
	"wellness-analytics/internal/features/metrics"
	"wellness-analytics/internal/features/series"
	"wellness-analytics/internal/telemetry"

	"go.uber.org/zap"
)

type CountSeries = series.Series[string, int64]
type RateSeries = series.Series[string, float64]

// Auditor records that a metric was computed. report.ReportService satisfies it.
type Auditor interface {
	LogMetric(ctx context.Context, scope, metric string) error
}

type noopAuditor struct{}

func (noopAuditor) LogMetric(context.Context, string, string) error { return nil }

type AnalyticsService interface {
	ParticipationStatus(ctx context.Context) (CountSeries, error)
	DepartmentParticipation(ctx context.Context) (CountSeries, error)
	ProgramParticipation(ctx context.Context) (CountSeries, error)
	CategoryParticipation(ctx context.Context) (CountSeries, error)
	MonthlyTrend(ctx context.Context) (RateSeries, error)
	ChallengeCompletion(ctx context.Context) (CountSeries, error)
	EngagementByDepartment(ctx context.Context) (RateSeries, error)
	ManagerTeamSize(ctx context.Context) (CountSeries, error)
	CompletionStatus(ctx context.Context) (CountSeries, error)
	GoalStatus(ctx context.Context) (CountSeries, error)
	ProgramStatus(ctx context.Context) (CountSeries, error)

	// Compute runs the metric registered under key and returns its series.
	Compute(ctx context.Context, key string) (any, error)
}

type AnalyticsServiceImpl struct {
	activityRepo  metrics.ActivityRepository
	goalRepo      metrics.GoalRepository
	challengeRepo metrics.ChallengeRepository
	userRepo      metrics.UserRepository
	programRepo   metrics.ProgramRepository
	auditor       Auditor
	telemetry     *telemetry.Telemetry
	logger        *zap.Logger
}

type Sources struct {
	Activity  metrics.ActivityRepository
	Goal      metrics.GoalRepository
	Challenge metrics.ChallengeRepository
	User      metrics.UserRepository
	Program   metrics.ProgramRepository
}

func NewSources(
	activityRepo metrics.ActivityRepository,
	goalRepo metrics.GoalRepository,
	challengeRepo metrics.ChallengeRepository,
	userRepo metrics.UserRepository,
	programRepo metrics.ProgramRepository,
) Sources {
	return Sources{
		Activity:  activityRepo,
		Goal:      goalRepo,
		Challenge: challengeRepo,
		User:      userRepo,
		Program:   programRepo,
	}
}

// NewAnalyticsService wires the metric sources. When AUDIT_METRICS is off the
// audit write is skipped and only the query runs.
func NewAnalyticsService(
	sources Sources,
	auditor Auditor,
	cfg *config.Config,
	tel *telemetry.Telemetry,
	logger *zap.Logger,
) AnalyticsService {
	if !cfg.AuditMetrics {
		auditor = noopAuditor{}
	}
	return &AnalyticsServiceImpl{
		activityRepo:  sources.Activity,
		goalRepo:      sources.Goal,
		challengeRepo: sources.Challenge,
		userRepo:      sources.User,
		programRepo:   sources.Program,
		auditor:       auditor,
		telemetry:     tel,
		logger:        logger,
	}
}

type rowQuery func(ctx context.Context) ([]series.Row, error)

// fetch performs the audit write and then the query.
func (s *AnalyticsServiceImpl) fetch(ctx context.Context, key string, query rowQuery) (Definition, []series.Row, error) {
	def, ok := Lookup(key)
	if !ok {
		return Definition{}, nil, fmt.Errorf("unknown metric %q", key)
	}
	s.telemetry.MetricRequested(ctx, key)

	if err := s.auditor.LogMetric(ctx, def.Scope, def.AuditMetric()); err != nil {
		s.telemetry.MetricFailed(ctx, key, "audit")
		return def, nil, err
	}

	rows, err := query(ctx)
	if err != nil {
		s.telemetry.MetricFailed(ctx, key, "query")
		return def, nil, fmt.Errorf("%s query: %w", def.Label, err)
	}
	return def, rows, nil
}

func computeSeries[V series.Scalar](ctx context.Context, s *AnalyticsServiceImpl, key string, query rowQuery) (series.Series[string, V], error) {
	def, rows, err := s.fetch(ctx, key, query)
	if err != nil {
		return series.Series[string, V]{}, err
	}
	out, err := series.Map[string, V](def.Label, rows)
	if err != nil {
		s.telemetry.MetricFailed(ctx, key, "map")
		s.logger.Error("metric rows do not match declared series type", zap.String("metric", key), zap.Error(err))
		return series.Series[string, V]{}, err
	}
	return out, nil
}

func (s *AnalyticsServiceImpl) ParticipationStatus(ctx context.Context) (CountSeries, error) {
	return computeSeries[int64](ctx, s, MetricParticipationStatus, s.activityRepo.ParticipationStatus)
}

func (s *AnalyticsServiceImpl) DepartmentParticipation(ctx context.Context) (CountSeries, error) {
	return computeSeries[int64](ctx, s, MetricDepartmentParticipation, s.activityRepo.ParticipationByDepartment)
}

func (s *AnalyticsServiceImpl) ProgramParticipation(ctx context.Context) (CountSeries, error) {
	return computeSeries[int64](ctx, s, MetricProgramParticipation, s.activityRepo.ParticipationByProgram)
}

func (s *AnalyticsServiceImpl) CategoryParticipation(ctx context.Context) (CountSeries, error) {
	return computeSeries[int64](ctx, s, MetricCategoryParticipation, s.activityRepo.ParticipationByCategory)
}

func (s *AnalyticsServiceImpl) MonthlyTrend(ctx context.Context) (RateSeries, error) {
	def, rows, err := s.fetch(ctx, MetricMonthlyTrend, s.activityRepo.MonthlyTrend)
	if err != nil {
		return RateSeries{}, err
	}
	out, err := series.MapMonthTrend(def.Label, rows)
	if err != nil {
		s.telemetry.MetricFailed(ctx, MetricMonthlyTrend, "map")
		s.logger.Error("monthly trend values are not numeric", zap.Error(err))
		return RateSeries{}, err
	}
	return out, nil
}

func (s *AnalyticsServiceImpl) ChallengeCompletion(ctx context.Context) (CountSeries, error) {
	return computeSeries[int64](ctx, s, MetricChallengeCompletion, s.challengeRepo.ChallengeCompletion)
}

func (s *AnalyticsServiceImpl) EngagementByDepartment(ctx context.Context) (RateSeries, error) {
	return computeSeries[float64](ctx, s, MetricDepartmentEngagement, s.goalRepo.EngagementByDepartment)
}

func (s *AnalyticsServiceImpl) ManagerTeamSize(ctx context.Context) (CountSeries, error) {
	return computeSeries[int64](ctx, s, MetricManagerTeamSize, s.userRepo.ManagerTeamSize)
}

func (s *AnalyticsServiceImpl) CompletionStatus(ctx context.Context) (CountSeries, error) {
	return computeSeries[int64](ctx, s, MetricActivityCompletionStatus, s.activityRepo.CompletionStatus)
}

func (s *AnalyticsServiceImpl) GoalStatus(ctx context.Context) (CountSeries, error) {
	return computeSeries[int64](ctx, s, MetricGoalStatus, s.goalRepo.GoalStatus)
}

func (s *AnalyticsServiceImpl) ProgramStatus(ctx context.Context) (CountSeries, error) {
	return computeSeries[int64](ctx, s, MetricProgramStatus, s.programRepo.ProgramStatusCount)
}

func (s *AnalyticsServiceImpl) Compute(ctx context.Context, key string) (any, error) {
	switch key {
	case MetricParticipationStatus:
		return s.ParticipationStatus(ctx)
	case MetricDepartmentParticipation:
		return s.DepartmentParticipation(ctx)
	case MetricProgramParticipation:
		return s.ProgramParticipation(ctx)
	case MetricCategoryParticipation:
		return s.CategoryParticipation(ctx)
	case MetricMonthlyTrend:
		return s.MonthlyTrend(ctx)
	case MetricChallengeCompletion:
		return s.ChallengeCompletion(ctx)
	case MetricDepartmentEngagement:
		return s.EngagementByDepartment(ctx)
	case MetricManagerTeamSize:
		return s.ManagerTeamSize(ctx)
	case MetricActivityCompletionStatus:
		return s.CompletionStatus(ctx)
	case MetricGoalStatus:
		return s.GoalStatus(ctx)
	case MetricProgramStatus:
		return s.ProgramStatus(ctx)
	default:
		return nil, fmt.Errorf("unknown metric %q", key)
	}
}
