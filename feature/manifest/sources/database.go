package sources

import (
	"context"
	"errors"
	"fmt"

	"manifest-validator/feature/manifest/models"

	"gorm.io/gorm"
)

// DatabaseSource reads a published manifest from the install_manifests table.
type DatabaseSource struct {
	db   *gorm.DB
	name string
}

// NewDatabaseSource creates a source for the row called name.
func NewDatabaseSource(db *gorm.DB, name string) *DatabaseSource {
	return &DatabaseSource{db: db, name: name}
}

func (s *DatabaseSource) Describe() string {
	return "install_manifests/" + s.name
}

func (s *DatabaseSource) Read(ctx context.Context) ([]byte, error) {
	var rec models.ManifestRecord
	err := s.db.WithContext(ctx).Where("name = ?", s.name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query manifest %s: %w", s.name, err)
	}
	return []byte(rec.Body), nil
}

// ListStored returns the names of every published manifest, ordered by name.
func ListStored(ctx context.Context, db *gorm.DB) ([]string, error) {
	var names []string
	if err := db.WithContext(ctx).Model(&models.ManifestRecord{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list manifests: %w", err)
	}
	return names, nil
}
