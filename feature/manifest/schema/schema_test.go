package schema

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLint_ValidFixture(t *testing.T) {
	data, err := os.ReadFile("../testdata/valid.json")
	require.NoError(t, err)

	findings, err := Lint(data)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestLint_ReportsUnknownKeysAndTypes(t *testing.T) {
	doc := `{
		"mods": [{
			"name": "m",
			"submods": [{"name": "s", "files": [{"name": "a", "sha": "x"}]}],
			"modOptionGroups": [{"name": "g", "radio": [{"name": 3}]}]
		}]
	}`

	findings, err := Lint([]byte(doc))
	require.NoError(t, err)
	require.NotEmpty(t, findings)

	paths := make([]string, 0, len(findings))
	for _, f := range findings {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "/mods/0/submods/0/files/0")
	assert.Contains(t, paths, "/mods/0/modOptionGroups/0/radio/0/name")
}

func TestLint_UnknownOS(t *testing.T) {
	doc := `{"mods":[{"name":"m","submods":[{"name":"s","files":[],"fileOverrides":[{"name":"a","os":["amiga"],"url":"u"}]}]}]}`

	findings, err := Lint([]byte(doc))
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "/mods/0/submods/0/fileOverrides/0/os/0", findings[0].Path)
}

func TestLint_CorruptedInput(t *testing.T) {
	_, err := Lint([]byte(`{"mods":`))
	assert.Error(t, err)
}
