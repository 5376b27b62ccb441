// Package slog provides structured logging decorators for guidecorpus services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/guidecorpus"
)

// Ensure LoggingSource implements guidecorpus.GuidanceSource.
var _ guidecorpus.GuidanceSource = (*LoggingSource)(nil)

// LoggingSource wraps a GuidanceSource with logging.
type LoggingSource struct {
	next   guidecorpus.GuidanceSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next guidecorpus.GuidanceSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the file count.
func (s *LoggingSource) Discover(ctx context.Context) (paths []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("discover",
			"count", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx)
}

// Read delegates to the wrapped source and logs the file size.
func (s *LoggingSource) Read(ctx context.Context, path string) (file *guidecorpus.GuidanceFile, err error) {
	defer func(begin time.Time) {
		size := 0
		if file != nil {
			size = len(file.Text)
		}
		s.logger.Debug("read",
			"path", path,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Read(ctx, path)
}
