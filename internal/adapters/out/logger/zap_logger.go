package logger

import (
	"go.uber.org/zap"

	"github.com/clinera/appointment-slots-service/internal/config"
	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

// ZapLogger implements LoggerPort on top of zap. Events keep the
// dotted-key convention ("slots.compute.cache.miss") as the log
// message; structured fields ride along as zap fields.
type ZapLogger struct {
	zl            *zap.Logger
	defaultFields out.LogFields
	module        string
}

func NewZapLogger(cfg *config.Config) (*ZapLogger, error) {
	var zl *zap.Logger
	var err error

	if cfg.IsLocal() {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return &ZapLogger{
		zl:            zl,
		defaultFields: make(out.LogFields),
	}, nil
}

// NewNopLogger returns a LoggerPort that drops everything. Used by
// tests that exercise services through their ports.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{
		zl:            zap.NewNop(),
		defaultFields: make(out.LogFields),
	}
}

func (l *ZapLogger) WithFields(fields out.LogFields) out.LoggerPort {
	newLogger := &ZapLogger{
		zl:            l.zl,
		defaultFields: make(out.LogFields),
		module:        l.module,
	}

	for k, v := range l.defaultFields {
		newLogger.defaultFields[k] = v
	}
	for k, v := range fields {
		newLogger.defaultFields[k] = v
	}

	return newLogger
}

func (l *ZapLogger) WithModule(module string) out.LoggerPort {
	return &ZapLogger{
		zl:            l.zl,
		defaultFields: l.defaultFields,
		module:        module,
	}
}

func (l *ZapLogger) Debug(event string, fields out.LogFields) {
	l.zl.Debug(event, l.zapFields(fields)...)
}

func (l *ZapLogger) Info(event string, fields out.LogFields) {
	l.zl.Info(event, l.zapFields(fields)...)
}

func (l *ZapLogger) Warn(event string, fields out.LogFields) {
	l.zl.Warn(event, l.zapFields(fields)...)
}

func (l *ZapLogger) Error(event string, fields out.LogFields) {
	l.zl.Error(event, l.zapFields(fields)...)
}

func (l *ZapLogger) Sync() error {
	return l.zl.Sync()
}

func (l *ZapLogger) zapFields(fields out.LogFields) []zap.Field {
	merged := make(out.LogFields, len(l.defaultFields)+len(fields)+1)
	for k, v := range l.defaultFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	zapFields := make([]zap.Field, 0, len(merged)+1)
	if l.module != "" {
		zapFields = append(zapFields, zap.String("module", l.module))
	}
	for k, v := range merged {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}
