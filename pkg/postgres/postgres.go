package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

type DB struct {
	Host     string `yaml:"host" envconfig:"DB_HOST"`
	Port     string `yaml:"port" envconfig:"DB_PORT"`
	Username string `yaml:"user" envconfig:"DB_USER"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD"`
	NameDB   string `yaml:"dbname" envconfig:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
}

const driverName = "pgx"

func (cfg *DB) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   cfg.NameDB,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// NewPostgresDB connects to postgres and applies the embedded migrations.
func NewPostgresDB(ctx context.Context, cfg *DB, migrations fs.FS) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driverName, cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "sqlx.Connect")
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if migrations != nil {
		if err := migrate(ctx, db, migrations); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func migrate(ctx context.Context, db *sqlx.DB, migrations fs.FS) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose.SetDialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("goose.Up: %w", err)
	}
	return nil
}
