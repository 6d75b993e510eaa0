package manifest

import (
	"context"
	"errors"
	"fmt"

	"manifest-validator/core/storage"
	"manifest-validator/core/strictjson"
	"manifest-validator/feature/manifest/checks"
	"manifest-validator/feature/manifest/schema"
	"manifest-validator/feature/manifest/sources"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrSourceUnavailable is returned when a bucket or database source is requested but not configured.
var ErrSourceUnavailable = errors.New("manifest source not configured")

// Options tunes a validation run.
type Options struct {
	// Offline skips the reachability check.
	Offline bool
	// Schema adds the advisory JSON Schema lint to the report.
	Schema bool
}

// Service validates install manifests.
type Service struct {
	prober checks.Prober
	client storage.Client
	bucket string
	prefix string
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new manifest service. client and db may be nil when those sources are not configured.
func NewService(prober checks.Prober, client storage.Client, storageCfg storage.Config, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		prober: prober,
		client: client,
		bucket: storageCfg.Bucket,
		prefix: storageCfg.Prefix,
		db:     db,
		logger: logger,
	}
}

// Validate decodes data and runs the coverage and reachability checks over the result.
// A *strictjson.StructuralError is returned as an error with a nil report; unconsumed keys
// are reported alongside the other violations.
func (s *Service) Validate(ctx context.Context, data []byte, opts Options) (*Report, error) {
	report := &Report{Offline: opts.Offline}

	m, err := Decode(data)
	if err != nil {
		var unconsumed *strictjson.UnconsumedError
		if !errors.As(err, &unconsumed) {
			return nil, err
		}
		report.Unconsumed = unconsumed.Entries
		s.logger.Debug("Manifest has unconsumed keys", zap.Int("objects", len(unconsumed.Entries)))
	}

	var g errgroup.Group
	g.Go(func() error {
		report.Coverage = checks.CheckCoverage(m)
		return nil
	})
	if !opts.Offline {
		g.Go(func() error {
			report.Reachability = checks.CheckReachability(ctx, s.prober, m)
			return nil
		})
	}
	if opts.Schema {
		g.Go(func() error {
			findings, err := schema.Lint(data)
			if err != nil {
				return fmt.Errorf("schema lint failed: %w", err)
			}
			report.Schema = findings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.finalize()
	s.logger.Info("Manifest validated",
		zap.Bool("clean", report.Clean),
		zap.Int("unconsumed", len(report.Unconsumed)),
		zap.Int("coverage", len(report.Coverage)),
		zap.Int("reachability", len(report.Reachability)),
	)
	return report, nil
}

// ValidateSource reads the manifest from src and validates it.
func (s *Service) ValidateSource(ctx context.Context, src sources.Source, opts Options) (*Report, error) {
	data, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.Validate(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Describe(), err)
	}
	report.Source = src.Describe()
	return report, nil
}

// BucketSource returns the source for object in the configured bucket.
func (s *Service) BucketSource(object string) (sources.Source, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: storage", ErrSourceUnavailable)
	}
	return sources.NewBucketSource(s.client, s.bucket, object), nil
}

// StoredSource returns the source for a manifest published in the database.
func (s *Service) StoredSource(name string) (sources.Source, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%w: database", ErrSourceUnavailable)
	}
	return sources.NewDatabaseSource(s.db, name), nil
}

// ListBucket lists the manifest objects under the configured prefix.
func (s *Service) ListBucket(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: storage", ErrSourceUnavailable)
	}
	return sources.ListBucket(ctx, s.client, s.bucket, s.prefix)
}

// ListStored lists the manifests published in the database.
func (s *Service) ListStored(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%w: database", ErrSourceUnavailable)
	}
	return sources.ListStored(ctx, s.db)
}
