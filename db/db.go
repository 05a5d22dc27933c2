// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/tboonma/ku-polls/cliparse"
)

// Open connects to the configured database and verifies the connection.
// The driver is chosen by cfg.DatabaseType (sqlite or postgres).
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver := "sqlite"
	url := cfg.DatabaseURL

	switch cfg.DatabaseType {
	case "postgres":
		driver = "postgres"
	case "sqlite", "":
		// Cascade deletes depend on foreign keys being on for every connection.
		if !strings.Contains(url, "_pragma") {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + "_pragma=foreign_keys(1)"
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}
