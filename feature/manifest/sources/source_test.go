package sources

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource(t *testing.T) {
	t.Run("Reads File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"mods":[]}`), 0o644))

		src := NewFileSource(path)
		data, err := src.Read(context.Background())
		require.NoError(t, err)
		assert.Equal(t, `{"mods":[]}`, string(data))
		assert.Equal(t, path, src.Describe())
	})

	t.Run("Reads Stdin", func(t *testing.T) {
		src := &FileSource{Path: "-", Stdin: strings.NewReader(`{"mods":[]}`)}
		data, err := src.Read(context.Background())
		require.NoError(t, err)
		assert.Equal(t, `{"mods":[]}`, string(data))
		assert.Equal(t, "stdin", src.Describe())
	})

	t.Run("Missing File", func(t *testing.T) {
		src := NewFileSource(filepath.Join(t.TempDir(), "absent.json"))
		_, err := src.Read(context.Background())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
