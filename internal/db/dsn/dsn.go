// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/N2Core/N2Identity/internal/config"
)

// Create builds the Data Source Name for the configured engine.
func Create(dbCfg config.DB) string {
	switch dbCfg.Engine {
	case config.EngineMySQL:
		out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
			dbCfg.User,
			dbCfg.Password,
			dbCfg.Host,
			dbCfg.Port,
			dbCfg.Name,
		)
		if dbCfg.Extras != "" {
			out += "?" + dbCfg.Extras
		}

		return out
	case config.EnginePostgres:
		parts := []string{
			"host=" + dbCfg.Host,
			fmt.Sprintf("port=%d", dbCfg.Port),
			"user=" + dbCfg.User,
			"password=" + dbCfg.Password,
			"dbname=" + dbCfg.Name,
		}
		if dbCfg.Extras != "" {
			parts = append(parts, dbCfg.Extras)
		}

		return strings.Join(parts, " ")
	default:
		if dbCfg.Extras == "" {
			return dbCfg.Path
		}

		return dbCfg.Path + "?" + dbCfg.Extras
	}
}
