// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"

	"github.com/glebarez/sqlite"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
)

// Create builds the Data Source Name from the configuration for the configured engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
		)
		if cfg.DB.Extras != "" {
			out += " " + cfg.DB.Extras
		}

		return out
	case config.EngineSQLite:
		if cfg.DB.Extras != "" {
			return cfg.DB.Name + "?" + cfg.DB.Extras
		}

		return cfg.DB.Name
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Name,
			cfg.DB.Extras,
		)
	}
}

// URI builds the connection URI used by the fiber storage drivers.
// SQLite has no storage driver and returns an empty string.
func URI(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.DB.User, cfg.DB.Password),
			Host:     fmt.Sprintf("%s:%d", cfg.DB.Host, cfg.DB.Port),
			Path:     "/" + cfg.DB.Name,
			RawQuery: cfg.DB.Extras,
		}

		return u.String()
	case config.EngineSQLite:
		return ""
	default:
		return Create(cfg)
	}
}

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return gormpostgres.Open(Create(cfg))
	case config.EngineSQLite:
		return sqlite.Open(Create(cfg))
	default:
		return gormmysql.Open(Create(cfg))
	}
}
