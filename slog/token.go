package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/guidecorpus"
)

// Ensure LoggingTokenCounter implements guidecorpus.TokenCounter.
var _ guidecorpus.TokenCounter = (*LoggingTokenCounter)(nil)

// LoggingTokenCounter wraps a TokenCounter with debug logging.
type LoggingTokenCounter struct {
	next   guidecorpus.TokenCounter
	logger *slog.Logger
}

// NewLoggingTokenCounter creates a new LoggingTokenCounter.
func NewLoggingTokenCounter(next guidecorpus.TokenCounter, logger *slog.Logger) *LoggingTokenCounter {
	return &LoggingTokenCounter{next: next, logger: logger}
}

// CountTokens delegates to the wrapped counter and logs the count.
func (c *LoggingTokenCounter) CountTokens(ctx context.Context, text string) (n int, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("count tokens",
			"chars", len([]rune(text)),
			"tokens", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.CountTokens(ctx, text)
}
