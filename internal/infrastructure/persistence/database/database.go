// Package database provides the SQL connection layer for the metric store,
// supporting local sqlite3 files and remote libsql/Turso databases.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/socialpulse/socialpulse-go/pkg/config"
)

// Database wraps a SQL connection with its backend type.
type Database struct {
	Conn     *sql.DB
	UseTurso bool
}

// Config selects and parameterizes the SQL backend.
type Config struct {
	SQLitePath string
	TursoURL   string
	TursoToken string
	UseTurso   bool
}

// New opens a connection per the config. Turso wins when enabled and fully
// configured; otherwise a local sqlite3 file is opened, creating its
// directory if needed.
func New(cfg *Config) (*Database, error) {
	if cfg.UseTurso && cfg.TursoURL != "" && cfg.TursoToken != "" {
		connStr := cfg.TursoURL + "?authToken=" + cfg.TursoToken
		conn, err := sql.Open("libsql", connStr)
		if err != nil {
			return nil, fmt.Errorf("turso connection failed: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("turso ping failed: %w", err)
		}
		applyPoolSettings(conn)
		return &Database{Conn: conn, UseTurso: true}, nil
	}

	dbDir := filepath.Dir(cfg.SQLitePath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection failed: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite ping failed: %w", err)
	}

	applyPoolSettings(conn)
	return &Database{Conn: conn, UseTurso: false}, nil
}

func applyPoolSettings(conn *sql.DB) {
	conn.SetMaxOpenConns(config.DBMaxOpenConns)
	conn.SetMaxIdleConns(config.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
	conn.SetConnMaxIdleTime(time.Duration(config.DBConnMaxIdleMinutes) * time.Minute)
}

// Close closes the underlying connection.
func (db *Database) Close() error {
	if db.Conn != nil {
		return db.Conn.Close()
	}
	return nil
}

// ConnectionInfo returns a short description for logging.
func (db *Database) ConnectionInfo() string {
	if db.UseTurso {
		return "turso (remote)"
	}
	return "sqlite3 (local)"
}
