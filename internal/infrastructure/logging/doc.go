// Package logging provides structured logging for the remote client.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the application.
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("session activated", "remote_id", session.RemoteID)
//	logger.Warn("snapshot poke failed", "error", err)
//
// # Security
//
// Never log the broker password, the full connection string, or the
// decoded shareable link: all three carry credentials. The access code
// and remote id on their own are safe to log.
package logging
