package models

import "time"

// ManifestRecord is a published manifest document stored in the install_manifests table.
type ManifestRecord struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;size:128"`
	Body      string    `gorm:"column:body;type:longtext"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name used by ManifestRecord.
func (ManifestRecord) TableName() string {
	return "install_manifests"
}
