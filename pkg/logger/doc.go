// Package logger builds configured slog.Logger instances and provides
// shared attribute helpers so log keys stay consistent across packages.
//
// The factory is option-based:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "socialauth"),
//	    logger.WithLevel(slog.LevelDebug),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers keep key names in one place:
//
//	log.Info("login completed",
//	    logger.Provider("google"),
//	    logger.AccountID(account.ID),
//	    logger.Component("gateway"),
//	)
package logger
