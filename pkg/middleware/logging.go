package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/psychat-dev/psychat/pkg/router"
)

// Logging creates middleware that logs every resolution at debug level.
// Unresolved paths are logged at info level since they usually mean a
// broken link.
func Logging(logger *slog.Logger) router.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "resolver")

	return func(next router.Resolver) router.Resolver {
		return router.ResolverFunc(func(ctx context.Context, path string) (*router.MatchResult, error) {
			start := time.Now()
			result, err := next.Resolve(ctx, path)
			if err != nil {
				logger.LogAttrs(ctx, slog.LevelInfo, "navigation unresolved",
					slog.String("path", path),
					slog.String("error", err.Error()),
				)
				return result, err
			}
			logger.LogAttrs(ctx, slog.LevelDebug, "navigation resolved",
				slog.String("path", path),
				slog.String("route", result.Route.Name),
				slog.String("view", string(result.View)),
				slog.Duration("elapsed", time.Since(start)),
			)
			return result, nil
		})
	}
}
