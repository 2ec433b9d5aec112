// Package logging wraps log/slog construction and provides standardized
// attribute helpers so components log consistently.
//
// Loggers are built from Options (level, format, output paths) or directly
// from application config. Components derive their own logger with
// NewComponentLogger, which stamps a "component" attribute on every record.
package logging
