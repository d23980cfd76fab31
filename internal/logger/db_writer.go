package logger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the worker
type LogEntry struct {
	Level   zapcore.Level
	Message string
	Caller  string
	Fields  map[string]any
	Time    time.Time
}

// LogRecord is the document stored in the logs collection.
type LogRecord struct {
	AppId        string         `bson:"app_id"`
	LogLevelId   int            `bson:"log_level_id"`
	Level        string         `bson:"level"`
	Message      string         `bson:"message"`
	Caller       string         `bson:"caller,omitempty"`
	Fields       map[string]any `bson:"fields,omitempty"`
	CreatedOnUtc time.Time      `bson:"created_on_utc"`
}

// LogSink persists log records.
type LogSink interface {
	Insert(ctx context.Context, record LogRecord) error
}

type mongoSink struct {
	collection *mongo.Collection
}

// NewMongoSink writes records into the logs collection of db.
func NewMongoSink(db *mongo.Database) LogSink {
	return &mongoSink{collection: db.Collection("logs")}
}

func (s *mongoSink) Insert(ctx context.Context, record LogRecord) error {
	_, err := s.collection.InsertOne(ctx, record)
	return err
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	sink    LogSink
	logChan chan LogEntry
	appId   string

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(sink LogSink, appId string) *DBLogWriter {
	writer := &DBLogWriter{
		sink:    sink,
		logChan: make(chan LogEntry, 1000),
		appId:   appId,
		done:    make(chan struct{}),
	}

	go writer.processLogs()

	return writer
}

// AddLog never blocks; entries are dropped when the buffer is full or the
// writer has been closed.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.logChan <- entry:
	default:
		fmt.Fprintln(os.Stderr, "log sink buffer full, dropping:", entry.Message)
	}
}

// Close drains buffered entries and stops the worker.
func (w *DBLogWriter) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.logChan)
	}
	w.mu.Unlock()
	<-w.done
}

func (w *DBLogWriter) processLogs() {
	defer close(w.done)

	for entry := range w.logChan {
		record := LogRecord{
			AppId:        w.appId,
			LogLevelId:   mapLevelToInt(entry.Level),
			Level:        entry.Level.String(),
			Message:      entry.Message,
			Caller:       entry.Caller,
			Fields:       entry.Fields,
			CreatedOnUtc: entry.Time.UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := w.sink.Insert(ctx, record); err != nil {
			fmt.Fprintln(os.Stderr, "log sink insert failed:", err)
		}
		cancel()
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
