package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/guidecorpus"
)

// Ensure JSONLStore implements guidecorpus.CorpusStore at compile time.
var _ guidecorpus.CorpusStore = (*JSONLStore)(nil)

// JSONLStore implements guidecorpus.CorpusStore as a newline-delimited JSON
// file. Documents are written to path.tmp and renamed over path on Commit.
// Nothing touches the filesystem until the first Save.
type JSONLStore struct {
	path string

	f     *os.File
	w     *bufio.Writer
	enc   *json.Encoder
	count int
}

// NewJSONLStore creates a new JSONLStore for the given output path.
func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// Path returns the final output path.
func (s *JSONLStore) Path() string {
	return s.path
}

// Count returns the number of documents saved since the last Commit or Abort.
func (s *JSONLStore) Count() int {
	return s.count
}

func (s *JSONLStore) tempPath() string {
	return s.path + ".tmp"
}

func (s *JSONLStore) Save(ctx context.Context, doc *guidecorpus.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	if s.f == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	// Encode appends the trailing newline.
	if err := s.enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document %q: %w", doc.ID, err)
	}
	s.count++
	return nil
}

func (s *JSONLStore) open() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(s.tempPath())
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}

	s.f = f
	s.w = bufio.NewWriter(f)
	s.enc = json.NewEncoder(s.w)
	s.enc.SetEscapeHTML(false)
	return nil
}

func (s *JSONLStore) Commit() error {
	if s.f == nil {
		return guidecorpus.Errorf(guidecorpus.EINVALID, "no documents to commit")
	}

	if err := s.w.Flush(); err != nil {
		_ = s.Abort()
		return fmt.Errorf("flush corpus file: %w", err)
	}
	if err := s.f.Close(); err != nil {
		s.f = nil
		_ = s.Abort()
		return fmt.Errorf("close corpus file: %w", err)
	}
	s.reset()

	// Replace any existing corpus at the output path
	if err := os.Rename(s.tempPath(), s.path); err != nil {
		return fmt.Errorf("replace corpus file: %w", err)
	}

	return nil
}

func (s *JSONLStore) Abort() error {
	if s.f != nil {
		_ = s.f.Close()
	}
	s.reset()

	if err := os.Remove(s.tempPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *JSONLStore) reset() {
	s.f = nil
	s.w = nil
	s.enc = nil
	s.count = 0
}
