// Package logger builds configured log/slog loggers with sane defaults.
//
// The factory defaults to info-level JSON on stdout and is adjusted with
// functional options:
//
//	log := logger.New(
//	    logger.WithDevelopment("session-demo"),
//	)
//
// or, for production:
//
//	log := logger.New(
//	    logger.WithProduction("session-demo"),
//	    logger.WithAttr(slog.String("version", version)),
//	)
package logger
