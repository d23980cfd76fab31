package logger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memorySink struct {
	mu      sync.Mutex
	records []LogRecord
	err     error
}

func (s *memorySink) Insert(ctx context.Context, record LogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

func newTeeLogger(sink LogSink) (*zap.Logger, *DBLogWriter, *observer.ObservedLogs) {
	base, observed := observer.New(zapcore.DebugLevel)
	writer := NewDBLogWriter(sink, "analytics-test")
	return zap.New(NewDBCore(base, writer, zapcore.WarnLevel)), writer, observed
}

func TestDBCorePersistsWarnAndAbove(t *testing.T) {
	sink := &memorySink{}
	log, writer, observed := newTeeLogger(sink)

	log.Info("metric computed", zap.String("metric", "goal-status"))
	log.Warn("snapshot metric failed", zap.String("metric", "monthly-trend"))
	log.Error("report store unavailable")
	writer.Close()

	assert.Equal(t, 3, observed.Len())
	require.Len(t, sink.records, 2)

	assert.Equal(t, "snapshot metric failed", sink.records[0].Message)
	assert.Equal(t, 30, sink.records[0].LogLevelId)
	assert.Equal(t, "warn", sink.records[0].Level)
	assert.Equal(t, "analytics-test", sink.records[0].AppId)
	assert.Equal(t, "monthly-trend", sink.records[0].Fields["metric"])
	assert.Equal(t, 40, sink.records[1].LogLevelId)
}

func TestDBCoreKeepsContextFields(t *testing.T) {
	sink := &memorySink{}
	log, writer, _ := newTeeLogger(sink)

	log.With(zap.String("requestId", "r-1")).Warn("slow query", zap.Int64("reportId", 4))
	writer.Close()

	require.Len(t, sink.records, 1)
	assert.Equal(t, "r-1", sink.records[0].Fields["requestId"])
	assert.Equal(t, int64(4), sink.records[0].Fields["reportId"])
}

func TestDBLogWriterSurvivesSinkErrors(t *testing.T) {
	sink := &memorySink{err: errors.New("not primary")}
	log, writer, observed := newTeeLogger(sink)

	log.Error("first")
	log.Error("second")
	writer.Close()
	writer.Close()

	assert.Equal(t, 2, observed.Len())
	assert.Empty(t, sink.records)
}

func TestDBLogWriterDropsEntriesAfterClose(t *testing.T) {
	sink := &memorySink{}
	log, writer, observed := newTeeLogger(sink)

	log.Error("before shutdown")
	writer.Close()

	assert.NotPanics(t, func() {
		log.Error("after shutdown")
		writer.AddLog(LogEntry{Level: zapcore.ErrorLevel, Message: "direct"})
	})

	assert.Equal(t, 2, observed.Len())
	require.Len(t, sink.records, 1)
	assert.Equal(t, "before shutdown", sink.records[0].Message)
}

func TestMapLevelToInt(t *testing.T) {
	assert.Equal(t, 10, mapLevelToInt(zapcore.DebugLevel))
	assert.Equal(t, 20, mapLevelToInt(zapcore.InfoLevel))
	assert.Equal(t, 50, mapLevelToInt(zapcore.FatalLevel))
}
