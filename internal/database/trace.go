package database

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapTracer struct {
	logger *zap.Logger
}

func newZapTracer(l *zap.Logger) *zapTracer {
	return &zapTracer{logger: l.WithOptions(zap.AddCallerSkip(1))}
}

func (t *zapTracer) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	fields := make([]zap.Field, 0, 4)
	if v, ok := data["sql"]; ok {
		fields = append(fields, zap.Any("sql", v))
	}
	if v, ok := data["args"]; ok {
		fields = append(fields, zap.Any("args", v))
	}
	if v, ok := data["time"]; ok {
		fields = append(fields, zap.Any("time", v))
	}
	if level == tracelog.LogLevelError {
		if err, ok := data["err"].(error); ok {
			fields = append(fields, zap.Error(err))
		}
	}

	t.logger.Log(zapLevel(level), msg, fields...)
}

func zapLevel(level tracelog.LogLevel) zapcore.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return zapcore.DebugLevel
	case tracelog.LogLevelWarn:
		return zapcore.WarnLevel
	case tracelog.LogLevelError:
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}
