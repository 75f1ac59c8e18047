package database

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
)

type zapTracer struct {
	logger *zap.Logger
}

func NewZapTracer(l *zap.Logger) tracelog.Logger {
	return &zapTracer{logger: l}
}

func (t *zapTracer) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	fields := []zap.Field{
		zap.Any("sql", data["sql"]),
		zap.Any("time", data["time"]),
	}
	if err, ok := data["err"].(error); ok {
		fields = append(fields, zap.Error(err))
	}

	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		t.logger.Debug(msg, fields...)
	case tracelog.LogLevelInfo:
		t.logger.Info(msg, fields...)
	case tracelog.LogLevelWarn:
		t.logger.Warn(msg, fields...)
	case tracelog.LogLevelError:
		t.logger.Error(msg, fields...)
	}
}
