// Package logging defines the leveled logger used across a build and the
// named child loggers handed to each stage.
package logging

import "maps"

// Stage logger names.
const (
	StageCSV      = "csv"
	StageValidate = "validate"
	StageEmit     = "emit"
	StageRender   = "render"
	StageCheck    = "check"
	StageCalendar = "calendar"
	StagePDF      = "pdf"
)

// Logger is the leveled logging contract. Args are alternating key/value
// pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithFields(fields map[string]any) Logger
}

// Provider hands out named loggers.
type Provider interface {
	GetLogger(name string) Logger
}

// Stage returns the logger for a build stage tagged with a "stage" field,
// or a no-op logger when provider is nil.
func Stage(provider Provider, name string) Logger {
	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(name); provided != nil {
			logger = provided
		}
	}
	return logger.WithFields(map[string]any{"stage": name})
}

// CloneFields copies fields so later mutation by the caller does not leak
// into logged entries.
func CloneFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return copied
}

// NoOp returns a logger that discards everything.
func NoOp() Logger {
	return noopLogger{}
}

// NoOpProvider returns a provider of no-op loggers.
func NoOpProvider() Provider {
	return noopProvider{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger { return n }

type noopProvider struct{}

func (noopProvider) GetLogger(string) Logger { return noopLogger{} }
