package manifest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"manifest-validator/core/probe"
	"manifest-validator/core/storage"
	"manifest-validator/core/strictjson"
	"manifest-validator/feature/manifest/checks"
	"manifest-validator/feature/manifest/models"
	"manifest-validator/feature/manifest/sources"

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

func newTestService(p checks.Prober) *Service {
	return NewService(p, nil, storage.Config{Bucket: "manifests", Prefix: "installer/"}, nil, zap.NewNop())
}

func TestValidate_CleanOffline(t *testing.T) {
	p := new(mockProber)
	svc := newTestService(p)

	report, err := svc.Validate(context.Background(), loadFixture(t, "valid.json"), Options{Offline: true})
	require.NoError(t, err)

	assert.True(t, report.Clean)
	assert.True(t, report.Offline)
	assert.Empty(t, report.Unconsumed)
	assert.Empty(t, report.Coverage)
	assert.Empty(t, report.Reachability)
	assert.Nil(t, report.Schema)
	p.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestValidate_ReachabilityViolations(t *testing.T) {
	targets := checks.CollectURLs(mustDecode(t, "valid.json"))
	require.Len(t, targets, 6)

	p := new(mockProber)
	p.On("Run", mock.Anything, targets).Return([]probe.Violation{
		{Kind: probe.KindTimeout, Target: targets[0], Attempts: 3},
		{Kind: probe.KindUnexpectedStatus, Target: targets[3], Status: 404, Attempts: 1},
	})
	svc := newTestService(p)

	report, err := svc.Validate(context.Background(), loadFixture(t, "valid.json"), Options{})
	require.NoError(t, err)

	assert.False(t, report.Clean)
	assert.Equal(t, 2, report.Problems())
	require.Len(t, report.Reachability, 2)
	// Sorted by path: fileOverrides sorts before files.
	assert.Equal(t, "mods[0].submods[0].fileOverrides[2].url", report.Reachability[0].Target.Path.String())
	assert.Equal(t, probe.KindUnexpectedStatus, report.Reachability[0].Kind)
	assert.Equal(t, "mods[0].submods[0].files[0].url", report.Reachability[1].Target.Path.String())
	p.AssertExpectations(t)
}

func TestValidate_UnconsumedStillChecksCoverage(t *testing.T) {
	svc := newTestService(new(mockProber))

	report, err := svc.Validate(context.Background(), loadFixture(t, "unconsumed.json"), Options{Offline: true})
	require.NoError(t, err)

	assert.False(t, report.Clean)
	require.Len(t, report.Unconsumed, 3)
	assert.Equal(t, "$", report.Unconsumed[0].Path.String())
	assert.Equal(t, []string{"comment"}, report.Unconsumed[0].Keys)
	assert.Equal(t, "mods[0]", report.Unconsumed[1].Path.String())
	assert.Equal(t, "mods[0].submods[0].files[0]", report.Unconsumed[2].Path.String())

	// "ui" has no url and no overrides at all.
	assert.Len(t, report.Coverage, 6)
	for _, v := range report.Coverage {
		assert.Equal(t, checks.KindUncoveredFile, v.Kind)
		assert.Equal(t, "mods[0].submods[0].files[1]", v.Path.String())
	}
}

func TestValidate_StructuralAborts(t *testing.T) {
	p := new(mockProber)
	svc := newTestService(p)

	report, err := svc.Validate(context.Background(), []byte(`{"mods":[{"name":"A"}]}`), Options{})
	assert.Nil(t, report)

	var structural *strictjson.StructuralError
	require.True(t, errors.As(err, &structural))
	assert.Equal(t, strictjson.CauseMissingKey, structural.Cause)
	assert.Equal(t, "mods[0].submods", structural.Path.String())
	p.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestValidate_SchemaIsAdvisory(t *testing.T) {
	svc := newTestService(new(mockProber))

	report, err := svc.Validate(context.Background(), loadFixture(t, "valid.json"), Options{Offline: true, Schema: true})
	require.NoError(t, err)
	assert.True(t, report.Clean)
	assert.Empty(t, report.Schema)

	report, err = svc.Validate(context.Background(), loadFixture(t, "unconsumed.json"), Options{Offline: true, Schema: true})
	require.NoError(t, err)
	assert.NotEmpty(t, report.Schema)
	assert.Equal(t, 9, report.Problems())
}

func TestValidateSource(t *testing.T) {
	svc := newTestService(new(mockProber))

	src := &sources.FileSource{Path: "-", Stdin: strings.NewReader(string(loadFixture(t, "valid.json")))}
	report, err := svc.ValidateSource(context.Background(), src, Options{Offline: true})
	require.NoError(t, err)
	assert.Equal(t, "stdin", report.Source)
	assert.True(t, report.Clean)

	src = &sources.FileSource{Path: "-", Stdin: strings.NewReader("{")}
	_, err = svc.ValidateSource(context.Background(), src, Options{Offline: true})
	var structural *strictjson.StructuralError
	require.True(t, errors.As(err, &structural))
	assert.Equal(t, strictjson.CauseCorrupted, structural.Cause)
	assert.Contains(t, err.Error(), "stdin: ")
}

func TestService_UnconfiguredSources(t *testing.T) {
	svc := newTestService(new(mockProber))

	_, err := svc.BucketSource("a.json")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	_, err = svc.StoredSource("a")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	_, err = svc.ListBucket(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	_, err = svc.ListStored(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func mustDecode(t *testing.T, name string) *models.Manifest {
	t.Helper()
	m, err := Decode(loadFixture(t, name))
	require.NoError(t, err)
	return m
}
