// Package logger builds *slog.Logger values with environment presets and
// context extractors, and provides attribute helpers that keep key names
// consistent across the alert packages.
//
//	log, err := logger.NewFromConfig(cfg,
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	if err != nil {
//	    return err
//	}
//	logger.SetAsDefault(log)
//
//	log.LogAttrs(ctx, slog.LevelWarn, "Failed to persist alerts",
//	    logger.Scope(scope),
//	    logger.Count(len(list)),
//	    logger.Error(err),
//	)
//
// Error and Errors return an empty attribute for nil errors, which slog drops.
// Scope truncates its value because scopes are often session tokens.
package logger
