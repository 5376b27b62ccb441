package mock

import (
	"context"

	"github.com/fwojciec/guidecorpus"
)

var _ guidecorpus.BuildService = (*BuildService)(nil)

// BuildService is a mock implementation of guidecorpus.BuildService.
type BuildService struct {
	CreateBuildFn   func(ctx context.Context, build *guidecorpus.Build) error
	FindBuildByIDFn func(ctx context.Context, id string) (*guidecorpus.Build, error)
	FindBuildsFn    func(ctx context.Context, filter guidecorpus.BuildFilter) ([]*guidecorpus.Build, error)
	DeleteBuildFn   func(ctx context.Context, id string) error
}

func (s *BuildService) CreateBuild(ctx context.Context, build *guidecorpus.Build) error {
	return s.CreateBuildFn(ctx, build)
}

func (s *BuildService) FindBuildByID(ctx context.Context, id string) (*guidecorpus.Build, error) {
	return s.FindBuildByIDFn(ctx, id)
}

func (s *BuildService) FindBuilds(ctx context.Context, filter guidecorpus.BuildFilter) ([]*guidecorpus.Build, error) {
	return s.FindBuildsFn(ctx, filter)
}

func (s *BuildService) DeleteBuild(ctx context.Context, id string) error {
	return s.DeleteBuildFn(ctx, id)
}
