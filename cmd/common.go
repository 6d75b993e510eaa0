package cmd

import (
	"fmt"
	"net/http"

	"manifest-validator/core/config"
	"manifest-validator/core/database"
	"manifest-validator/core/probe"
	"manifest-validator/core/storage"
	"manifest-validator/feature/manifest"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// serviceDeps selects which optional sources a command needs.
type serviceDeps struct {
	storage  bool
	database bool
}

// newService wires the manifest service for CLI commands. Sources that are not needed stay nil.
func newService(cfg *config.Config, logg *zap.Logger, deps serviceDeps) (*manifest.Service, error) {
	prober := probe.New(&http.Client{}, cfg.Probe, logg)

	var client storage.Client
	if deps.storage {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		client = c
	}

	var db *gorm.DB
	if deps.database {
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		db = conn
	}

	return manifest.NewService(prober, client, cfg.Storage, db, logg), nil
}
