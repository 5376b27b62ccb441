package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/guidecorpus"
	"github.com/fwojciec/guidecorpus/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusStore_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where CorpusStore is expected
	var _ guidecorpus.CorpusStore = &mock.CorpusStore{}
}

func TestCorpusStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *guidecorpus.Document
		s := &mock.CorpusStore{
			SaveFn: func(_ context.Context, doc *guidecorpus.Document) error {
				calledWith = doc
				return nil
			},
		}

		doc := &guidecorpus.Document{
			ID:         "fatigue",
			StructData: guidecorpus.StructData{RawText: "Rest and hydrate."},
		}

		err := s.Save(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, doc, calledWith)
	})
}
