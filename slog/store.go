package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/guidecorpus"
)

// Ensure LoggingStore implements guidecorpus.CorpusStore.
var _ guidecorpus.CorpusStore = (*LoggingStore)(nil)

// LoggingStore wraps a CorpusStore with logging.
type LoggingStore struct {
	next   guidecorpus.CorpusStore
	logger *slog.Logger
	saved  int
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next guidecorpus.CorpusStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Save delegates to the wrapped store, logging failures.
func (s *LoggingStore) Save(ctx context.Context, doc *guidecorpus.Document) error {
	if err := s.next.Save(ctx, doc); err != nil {
		s.logger.Error("save", "id", doc.ID, "err", err)
		return err
	}
	s.saved++
	s.logger.Debug("save", "id", doc.ID, "bytes", len(doc.StructData.RawText))
	return nil
}

// Commit delegates to the wrapped store and logs the document count.
func (s *LoggingStore) Commit() (err error) {
	defer func(saved int) {
		s.logger.Info("commit", "documents", saved, "err", err)
	}(s.saved)
	s.saved = 0
	return s.next.Commit()
}

// Abort delegates to the wrapped store and logs discarded documents.
func (s *LoggingStore) Abort() (err error) {
	defer func(saved int) {
		s.logger.Warn("abort", "discarded", saved, "err", err)
	}(s.saved)
	s.saved = 0
	return s.next.Abort()
}
