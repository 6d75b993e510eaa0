package checks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"manifest-validator/core/probe"
	"manifest-validator/feature/manifest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Run(ctx context.Context, targets []probe.Target) []probe.Violation {
	args := m.Called(ctx, targets)
	if v, ok := args.Get(0).([]probe.Violation); ok {
		return v
	}
	return nil
}

func sampleManifest(base string) *models.Manifest {
	return &models.Manifest{Mods: []models.Mod{{
		Name: "Onikakushi",
		Submods: []models.Submod{{
			Name: "full",
			Files: []models.File{
				{Name: "cg", URL: strPtr(base + "/cg.7z")},
				{Name: "ui"},
			},
			FileOverrides: []models.FileOverride{
				{Name: "ui", OS: models.AllOS, URL: base + "/ui.7z"},
			},
		}},
		OptionGroups: []models.OptionGroup{{
			Name: "Extras",
			Radio: []models.OptionItem{
				{Name: "None"},
				{Name: "Movie", Data: &models.OptionData{URL: strPtr(base + "/movie.7z")}},
				{Name: "Patch", Data: &models.OptionData{}},
			},
		}, {
			Name:     "Voices",
			CheckBox: []models.OptionItem{{Name: "PS3", Data: &models.OptionData{URL: strPtr(base + "/missing.7z")}}},
		}},
	}}}
}

func TestCollectURLs(t *testing.T) {
	targets := CollectURLs(sampleManifest("https://example.com"))
	require.Len(t, targets, 4)

	paths := map[string]string{}
	for _, tg := range targets {
		paths[tg.Path.String()] = tg.URL
	}
	assert.Equal(t, map[string]string{
		"mods[0].submods[0].files[0].url":                 "https://example.com/cg.7z",
		"mods[0].submods[0].fileOverrides[0].url":         "https://example.com/ui.7z",
		"mods[0].modOptionGroups[0].radio[1].data.url":    "https://example.com/movie.7z",
		"mods[0].modOptionGroups[1].checkBox[0].data.url": "https://example.com/missing.7z",
	}, paths)
	assert.Equal(t, "Onikakushi/full/cg", targets[0].Label)
}

func TestCheckReachability_DelegatesToProber(t *testing.T) {
	p := new(mockProber)
	want := []probe.Violation{{Kind: probe.KindTimeout}}
	p.On("Run", mock.Anything, mock.MatchedBy(func(ts []probe.Target) bool { return len(ts) == 4 })).Return(want)

	got := CheckReachability(context.Background(), p, sampleManifest("https://example.com"))
	assert.Equal(t, want, got)
	p.AssertExpectations(t)
}

func TestCheckReachability_AgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.7z" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusPartialContent)
	}))
	defer srv.Close()

	cfg := probe.DefaultConfig()
	cfg.Deadline = 5 * time.Second
	p := probe.New(srv.Client(), cfg, zap.NewNop())

	violations := CheckReachability(context.Background(), p, sampleManifest(srv.URL))
	require.Len(t, violations, 1)
	assert.Equal(t, probe.KindUnexpectedStatus, violations[0].Kind)
	assert.Equal(t, "mods[0].modOptionGroups[1].checkBox[0].data.url", violations[0].Target.Path.String())
}
