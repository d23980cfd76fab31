package logger

import (
	"context"

	"wellness-analytics/internal/config"
	"wellness-analytics/internal/database"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger. When MongoDB is configured, warn
// and above are also persisted to the logs collection.
func NewLogger(lc fx.Lifecycle, cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// needed for Caller.Function
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	baseLogger = baseLogger.With(zap.String("app", cfg.AppId))

	if mongodb == nil || mongodb.DB == nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				_ = baseLogger.Sync()
				return nil
			},
		})
		return baseLogger, nil
	}

	dbWriter := NewDBLogWriter(NewMongoSink(mongodb.DB), cfg.AppId)
	logger := zap.New(NewDBCore(baseLogger.Core(), dbWriter, zapcore.WarnLevel), zap.AddCaller())

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			dbWriter.Close()
			return nil
		},
	})

	return logger, nil
}
