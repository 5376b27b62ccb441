package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/guidecorpus"
)

// Ensure LoggingBuildService implements guidecorpus.BuildService.
var _ guidecorpus.BuildService = (*LoggingBuildService)(nil)

// LoggingBuildService wraps a BuildService with logging.
type LoggingBuildService struct {
	next   guidecorpus.BuildService
	logger *slog.Logger
}

// NewLoggingBuildService creates a new LoggingBuildService.
func NewLoggingBuildService(next guidecorpus.BuildService, logger *slog.Logger) *LoggingBuildService {
	return &LoggingBuildService{next: next, logger: logger}
}

// CreateBuild delegates to the wrapped service and logs the new build.
func (s *LoggingBuildService) CreateBuild(ctx context.Context, build *guidecorpus.Build) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("record build",
			"id", build.ID,
			"output", build.OutputPath,
			"documents", build.DocumentCount,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateBuild(ctx, build)
}

// FindBuildByID delegates to the wrapped service.
func (s *LoggingBuildService) FindBuildByID(ctx context.Context, id string) (*guidecorpus.Build, error) {
	return s.next.FindBuildByID(ctx, id)
}

// FindBuilds delegates to the wrapped service and logs the result count.
func (s *LoggingBuildService) FindBuilds(ctx context.Context, filter guidecorpus.BuildFilter) (builds []*guidecorpus.Build, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find builds",
			"count", len(builds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindBuilds(ctx, filter)
}

// DeleteBuild delegates to the wrapped service and logs the deletion.
func (s *LoggingBuildService) DeleteBuild(ctx context.Context, id string) (err error) {
	defer func() {
		s.logger.Info("delete build", "id", id, "err", err)
	}()
	return s.next.DeleteBuild(ctx, id)
}
