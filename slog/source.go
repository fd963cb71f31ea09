package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/adlib"
)

// Ensure LoggingSourceService implements adlib.SourceService.
var _ adlib.SourceService = (*LoggingSourceService)(nil)

// LoggingSourceService wraps a SourceService with discovery logging.
type LoggingSourceService struct {
	next   adlib.SourceService
	logger *slog.Logger
}

// NewLoggingSourceService creates a new LoggingSourceService.
func NewLoggingSourceService(next adlib.SourceService, logger *slog.Logger) *LoggingSourceService {
	return &LoggingSourceService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSourceService) DiscoverURLs(ctx context.Context, ref string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("url discovery",
			"source", ref,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, ref)
}
