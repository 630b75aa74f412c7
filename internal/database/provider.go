package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Config holds the settings needed to open the connection pool
type Config struct {
	Driver   string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Provider hands out pooled connections and runs statements against them
type Provider struct {
	db     *sql.DB
	driver string
}

// New opens the connection pool. No network I/O happens until the first
// connection is requested.
func New(cfg Config) (*Provider, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s pool: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return NewWithDB(db, cfg.Driver), nil
}

// NewWithDB wraps an already opened pool.
func NewWithDB(db *sql.DB, driver string) *Provider {
	return &Provider{
		db:     db,
		driver: driver,
	}
}

// Acquire takes one connection from the pool. Callers must Close it to
// return it to the pool.
func (p *Provider) Acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, &ConnectionError{Op: "acquire", Err: err}
	}
	return conn, nil
}

// Ping acquires a connection and releases it straight back to the pool.
func (p *Provider) Ping(ctx context.Context) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := conn.Close(); err != nil {
		return &ConnectionError{Op: "release", Err: err}
	}
	return nil
}

// Query runs a parameterless statement and returns every row it produced.
func (p *Provider) Query(ctx context.Context, statement string) (ResultSet, error) {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, statement)
	if err != nil {
		return nil, classify(statement, err)
	}
	defer rows.Close()

	columns, err := rows.ColumnTypes()
	if err != nil {
		return nil, classify(statement, err)
	}

	result, err := scanRows(rows, columns)
	if err != nil {
		return nil, classify(statement, err)
	}

	return result, nil
}

// DB returns the underlying pool
func (p *Provider) DB() *sql.DB {
	return p.db
}

// Driver returns the database/sql driver name
func (p *Provider) Driver() string {
	return p.driver
}

// Close closes the pool
func (p *Provider) Close() error {
	return p.db.Close()
}

func buildDSN(cfg Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	switch cfg.Driver {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = cfg.Name
		mc.ParseTime = true
		mc.Timeout = 10 * time.Second
		return mc.FormatDSN(), nil
	case "postgres":
		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   addr,
			Path:   "/" + cfg.Name,
		}
		if cfg.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": []string{cfg.SSLMode}}.Encode()
		}
		return u.String(), nil
	case "sqlite":
		return cfg.Name, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
