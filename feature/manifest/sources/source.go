package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotFound is returned when the requested manifest does not exist in its source.
var ErrNotFound = errors.New("manifest not found")

// Source yields the bytes of one manifest document.
type Source interface {
	// Describe names the source in logs and reports.
	Describe() string
	Read(ctx context.Context) ([]byte, error)
}

// FileSource reads a manifest from disk, or from Stdin when Path is "-".
type FileSource struct {
	Path  string
	Stdin io.Reader
}

// NewFileSource creates a source for path, reading os.Stdin for "-".
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, Stdin: os.Stdin}
}

func (s *FileSource) Describe() string {
	if s.Path == "-" {
		return "stdin"
	}
	return s.Path
}

func (s *FileSource) Read(ctx context.Context) ([]byte, error) {
	if s.Path == "-" {
		data, err := io.ReadAll(s.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return data, nil
}
