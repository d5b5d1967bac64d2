// Package logger builds configured slog.Logger instances with functional
// options for level, format and output, plus small attribute helpers.
package logger
