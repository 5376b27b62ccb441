package mock

import (
	"context"

	"github.com/fwojciec/guidecorpus"
)

var _ guidecorpus.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is a mock implementation of guidecorpus.CorpusStore.
type CorpusStore struct {
	SaveFn   func(ctx context.Context, doc *guidecorpus.Document) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *CorpusStore) Save(ctx context.Context, doc *guidecorpus.Document) error {
	return s.SaveFn(ctx, doc)
}

func (s *CorpusStore) Commit() error {
	return s.CommitFn()
}

func (s *CorpusStore) Abort() error {
	return s.AbortFn()
}
