// Package db stores finished games in PostgreSQL. Live rooms never touch it.
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"ramudu/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrNotFound = errors.New("record not found")

const (
	maxOpenConns = 10
	pingTimeout  = 2 * time.Second
)

type DB struct {
	conn *sql.DB
}

func Connect(dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	d := &DB{conn: conn}
	if err := d.Ping(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	logger.Log.Infow("[DB] Connected to PostgreSQL", "maxOpenConns", maxOpenConns)
	return d, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// Ping checks the connection, giving up after a short timeout.
func (d *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return d.conn.PingContext(ctx)
}

func (d *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return d.conn.Query(query, args...)
}

func (d *DB) Exec(query string, args ...any) (sql.Result, error) {
	return d.conn.Exec(query, args...)
}

// Migrate brings the schema up to date with the embedded goose migrations.
func (d *DB) Migrate() error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(migrationLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	if err := goose.Up(d.conn, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// migrationLogger routes goose output through the service logger.
type migrationLogger struct{}

func (migrationLogger) Printf(format string, v ...any) {
	logger.Log.Infof("[DB] "+strings.TrimSpace(format), v...)
}

func (migrationLogger) Fatalf(format string, v ...any) {
	logger.Log.Fatalf("[DB] "+strings.TrimSpace(format), v...)
}
