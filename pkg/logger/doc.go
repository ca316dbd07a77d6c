// Package logger is a thin factory around log/slog that standardises
// structured logging across the toolkit.
//
// New builds a *slog.Logger from functional options (format, level, output,
// static attributes). Helper constructors in attr.go return commonly used
// slog.Attr values so attribute keys stay consistent across packages:
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithAttrs(slog.String("service", "billing")),
//	)
//	log.InfoContext(ctx, "subscription confirmed",
//	    logger.AccountID(accountID),
//	    logger.PlanID(planID),
//	)
package logger
