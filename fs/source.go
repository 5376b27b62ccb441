// Package fs provides file-based guidance sources and corpus storage.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/guidecorpus"
)

// Ensure DirSource implements guidecorpus.GuidanceSource at compile time.
var _ guidecorpus.GuidanceSource = (*DirSource)(nil)

// DirSource reads guidance files with a given extension from a directory.
type DirSource struct {
	dir string
	ext string
}

// NewDirSource creates a new DirSource for files ending in ext.
func NewDirSource(dir, ext string) *DirSource {
	return &DirSource{dir: dir, ext: ext}
}

// Dir returns the source directory.
func (s *DirSource) Dir() string {
	return s.dir
}

// Discover returns the paths of matching regular files sorted by file name.
func (s *DirSource) Discover(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, guidecorpus.Errorf(guidecorpus.ENOSOURCE, "source directory not found: %s", s.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("stat source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, guidecorpus.Errorf(guidecorpus.ENOSOURCE, "source path is not a directory: %s", s.dir)
	}

	// os.ReadDir returns entries sorted by file name.
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if len(name) <= len(s.ext) || !strings.HasSuffix(name, s.ext) {
			continue
		}

		path := filepath.Join(s.dir, name)

		// Follow symlinks; only regular files are guidance.
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !fi.Mode().IsRegular() {
			continue
		}

		paths = append(paths, path)
	}

	return paths, nil
}

// Read loads a guidance file and decodes it as UTF-8.
func (s *DirSource) Read(ctx context.Context, path string) (*guidecorpus.GuidanceFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guidance file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, guidecorpus.Errorf(guidecorpus.EINVALID, "guidance file is not valid UTF-8: %s", path)
	}

	return &guidecorpus.GuidanceFile{
		Path: path,
		Stem: strings.TrimSuffix(filepath.Base(path), s.ext),
		Text: string(data),
	}, nil
}
