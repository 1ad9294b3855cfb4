// Package logger builds slog loggers for the copilot service.
//
// New takes functional options for level, format, output, static attributes
// and context extractors. Extractors run on every record, which is how the
// request id set by the requestid middleware ends up in each log line:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "advisor-copilot"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "lookup served",
//	    logger.SessionID(sessionID),
//	    logger.VIN(vin),
//	    logger.Results(len(parts)),
//	)
//
// Attribute helpers such as Error, SessionID and VIN return an empty
// slog.Attr for empty input, so callers never need a nil check.
//
// Config and FromConfig map LOG_LEVEL and LOG_FORMAT onto options.
package logger
