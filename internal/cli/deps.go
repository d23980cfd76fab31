package cli

import (
	"context"
	"fmt"

	"wellness-analytics/internal/config"
	"wellness-analytics/internal/database"
	"wellness-analytics/internal/features/analytics"
	"wellness-analytics/internal/features/metrics"
	"wellness-analytics/internal/features/report"
	"wellness-analytics/internal/telemetry"

	"go.uber.org/zap"
)

// deps holds the services a command needs, built without the fx graph.
type deps struct {
	cfg       *config.Config
	sqlDB     *database.SQLDB
	mongoDB   *database.MongodbDB
	logger    *zap.Logger
	reports   report.ReportService
	analytics analytics.AnalyticsService
}

func newDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.OpenSQL(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	mongoDB, err := database.ConnectMongo(ctx, cfg)
	if err != nil {
		sqlDB.DB.Close()
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		logger, _ = zap.NewDevelopment()
	}

	repo, err := report.NewReportRepository(cfg, sqlDB, mongoDB)
	if err != nil {
		sqlDB.DB.Close()
		mongoDB.Close(ctx)
		return nil, err
	}
	reports := report.NewReportService(repo, logger)

	sources := analytics.NewSources(
		metrics.NewActivityRepository(sqlDB),
		metrics.NewGoalRepository(sqlDB),
		metrics.NewChallengeRepository(sqlDB),
		metrics.NewUserRepository(sqlDB),
		metrics.NewProgramRepository(sqlDB),
	)

	return &deps{
		cfg:       cfg,
		sqlDB:     sqlDB,
		mongoDB:   mongoDB,
		logger:    logger,
		reports:   reports,
		analytics: analytics.NewAnalyticsService(sources, reports, cfg, telemetry.NewNoop(), logger),
	}, nil
}

func (d *deps) Close(ctx context.Context) {
	_ = d.logger.Sync()
	_ = d.mongoDB.Close(ctx)
	_ = d.sqlDB.DB.Close()
}
