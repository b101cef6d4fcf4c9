package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

var (
	// ErrNotFound is returned when an id or token matches no row.
	ErrNotFound = errors.New("not found")
	// ErrUnknownResource is returned for a resource name outside the registry.
	ErrUnknownResource = errors.New("unknown resource")
)

// Open connects to Postgres and verifies the connection. Managed providers
// commonly present self-signed certificates, so when the URL carries no ssl
// parameter we default to sslmode=require (encrypted, no CA verification).
func Open(databaseURL string) (*sql.DB, error) {
	if !strings.Contains(databaseURL, "sslmode=") {
		sep := "?"
		if strings.Contains(databaseURL, "?") {
			sep = "&"
		}
		databaseURL += sep + "sslmode=require"
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
