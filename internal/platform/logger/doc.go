// Package logger provides structured logging functionality for the application.
//
// It builds JSON log/slog loggers with a configurable level and carries a
// request-scoped logger through context.Context so handlers, services and
// stores log with the same trace and user attributes.
package logger
