// Package sl contains small helpers for the slog logger.
// The main purpose is uniform structured log fields, in particular
// for attaching errors to log records.
package sl

import "log/slog"

// Err returns a slog.Attr with the key "error" and the error text.
// Keeps error output uniform across all handlers and services.
//
// Example:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
