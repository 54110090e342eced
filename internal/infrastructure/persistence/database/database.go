// Package database provides the core functionality for creating and managing
// database connections in a clean, isolated manner.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
}

// NewConnection establishes a new database connection for the specified driver.
func NewConnection(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// Open selects the driver from configuration: a non-empty remote URL uses the
// libsql driver (Turso), otherwise a local SQLite file is created on demand.
func Open(remoteURL, authToken, localPath string, logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()

	var driverName, dsn string
	if remoteURL != "" {
		driverName = "libsql"
		dsn = remoteURL
		if authToken != "" {
			dsn = fmt.Sprintf("%s?authToken=%s", remoteURL, authToken)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		driverName = "sqlite3"
		dsn = localPath
	}

	logger.Database().Debug("Creating new database connection", "driverName", driverName)

	db, err := NewConnection(driverName, dsn)
	if err != nil {
		logger.Database().Error("Failed to open database connection",
			"error", err.Error(), "driverName", driverName)
		return nil, err
	}

	logger.Database().Info("Database connection established",
		"driverName", driverName, "duration", time.Since(start))

	return db, nil
}
