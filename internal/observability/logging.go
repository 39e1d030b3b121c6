// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// StoreLogger provides structured logging for record store operations.
type StoreLogger struct {
	logger *Logger
}

// NewStoreLogger creates a StoreLogger.
func NewStoreLogger() *StoreLogger {
	return &StoreLogger{logger: GlobalLogger}
}

// LogMutation logs a store mutation and the resulting collection size.
func (l *StoreLogger) LogMutation(ctx context.Context, op string, kind string, id string, size int) {
	l.logger.InfoContext(ctx, "store mutation",
		slog.String("operation", op),
		slog.String("kind", kind),
		slog.String("record_id", id),
		slog.Int("collection_size", size),
	)
}

// LogRecovered logs a malformed persisted slot being recovered to empty.
func (l *StoreLogger) LogRecovered(ctx context.Context, slot string, err error) {
	l.logger.WarnContext(ctx, "malformed slot recovered as empty",
		slog.String("slot", slot),
		slog.String("error", err.Error()),
	)
}

// LogError logs a store error.
func (l *StoreLogger) LogError(ctx context.Context, err error, op string) {
	l.logger.ErrorContext(ctx, "store error",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// ScreenLogger provides structured logging for the UI screen.
type ScreenLogger struct {
	logger *Logger
}

// NewScreenLogger creates a ScreenLogger.
func NewScreenLogger() *ScreenLogger {
	return &ScreenLogger{logger: GlobalLogger}
}

// LogRender logs a page render.
func (l *ScreenLogger) LogRender(page string, elapsed time.Duration, records int) {
	l.logger.Info("page rendered",
		slog.String("page", page),
		slog.Duration("elapsed", elapsed),
		slog.Int("records", records),
	)
}

// LogRenderError logs a failed page render.
func (l *ScreenLogger) LogRenderError(page string, err error) {
	l.logger.Error("page render failed",
		slog.String("page", page),
		slog.String("error", err.Error()),
	)
}

// LogConnect logs a screen websocket connection.
func (l *ScreenLogger) LogConnect(remote string) {
	l.logger.Info("screen connected", slog.String("remote", remote))
}

// LogDisconnect logs a screen websocket disconnection.
func (l *ScreenLogger) LogDisconnect(remote string, reason string) {
	l.logger.Info("screen disconnected",
		slog.String("remote", remote),
		slog.String("reason", reason),
	)
}
