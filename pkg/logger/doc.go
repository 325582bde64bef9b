// Package logger standardises structured logging across the module on top
// of log/slog.
//
// New builds a *slog.Logger from functional options (output format, level,
// destination, static attributes); Discard returns a logger that drops
// everything and is the default injected into services so that logging is
// always safe to call. Attribute helpers (Error, Component, Route, ...) keep
// field names consistent across packages.
//
//	log := logger.New(
//	    logger.WithJSONFormat(),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttrs(logger.Component("apiclient")),
//	)
//	log.Info("credential renewed", logger.UserID(claims.Subject))
package logger
