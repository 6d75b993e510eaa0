// Package database handles the optional MySQL connection used as a manifest source.
//
// Published manifests can live in an install_manifests table (see
// feature/manifest/models.ManifestRecord). Connect wraps GORM with timeouts taken from
// the configuration and verifies the connection with a ping.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
