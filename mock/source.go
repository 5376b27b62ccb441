package mock

import (
	"context"

	"github.com/fwojciec/guidecorpus"
)

var _ guidecorpus.GuidanceSource = (*GuidanceSource)(nil)

// GuidanceSource is a mock implementation of guidecorpus.GuidanceSource.
type GuidanceSource struct {
	DiscoverFn func(ctx context.Context) ([]string, error)
	ReadFn     func(ctx context.Context, path string) (*guidecorpus.GuidanceFile, error)
}

func (s *GuidanceSource) Discover(ctx context.Context) ([]string, error) {
	return s.DiscoverFn(ctx)
}

func (s *GuidanceSource) Read(ctx context.Context, path string) (*guidecorpus.GuidanceFile, error) {
	return s.ReadFn(ctx, path)
}
