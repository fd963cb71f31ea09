// Package slog provides logging decorators for adlib services using the
// standard library's structured logger.
package slog

import (
	"log/slog"

	"github.com/fwojciec/adlib"
)

// NewObserver returns an ObserverFunc that logs every strategy attempt.
// Matches are logged at Info level with the winning strategy name;
// misses are logged at Debug level so a chain's full descent is visible
// when debugging selector drift. A miss is an expected outcome and is
// never logged as an error.
func NewObserver(logger *slog.Logger) adlib.ObserverFunc {
	return func(event adlib.StrategyEvent) {
		if event.Matched {
			logger.Info("field extracted",
				"url", event.SourceURL,
				"field", event.Field,
				"strategy", event.Strategy,
			)
			return
		}
		logger.Debug("strategy miss",
			"url", event.SourceURL,
			"field", event.Field,
			"strategy", event.Strategy,
		)
	}
}
