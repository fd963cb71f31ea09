package mock

import (
	"context"

	"github.com/fwojciec/adlib"
)

var _ adlib.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of adlib.SourceService.
type SourceService struct {
	DiscoverURLsFn func(ctx context.Context, ref string) ([]string, error)
}

func (s *SourceService) DiscoverURLs(ctx context.Context, ref string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, ref)
}

var _ adlib.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of adlib.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *Limiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
