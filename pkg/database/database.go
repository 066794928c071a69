package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// pure-Go sqlite driver registered as "sqlite"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options describes how to reach the store. For DriverSQLite, Name is the
// database file path and the network fields are ignored.
type Options struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// TLS requests an encrypted connection without certificate verification.
	TLS        bool
	MaxConns   int
	LogQueries bool
}

// DSN renders the driver specific connection string.
func DSN(o Options) (string, error) {
	switch o.Driver {
	case DriverMySQL:
		c := mysqldriver.NewConfig()
		c.User = o.User
		c.Passwd = o.Password
		c.Net = "tcp"
		c.Addr = net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
		c.DBName = o.Name
		c.ParseTime = true
		c.Params = map[string]string{"charset": "utf8mb4"}
		if o.TLS {
			c.TLSConfig = "skip-verify"
		}
		return c.FormatDSN(), nil
	case DriverPostgres:
		sslmode := "disable"
		if o.TLS {
			sslmode = "require"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(o.User, o.Password),
			Host:     net.JoinHostPort(o.Host, strconv.Itoa(o.Port)),
			Path:     "/" + o.Name,
			RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
		}
		return u.String(), nil
	case DriverSQLite:
		if o.Name == "" {
			return "", errors.New("sqlite database path is empty")
		}
		if strings.Contains(o.Name, "?") {
			return o.Name, nil
		}
		return o.Name + "?_pragma=busy_timeout(5000)", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", o.Driver)
	}
}

func dialector(o Options) (gorm.Dialector, error) {
	dsn, err := DSN(o)
	if err != nil {
		return nil, err
	}
	switch o.Driver {
	case DriverMySQL:
		// skip the version probe so an unreachable server does not fail Open
		return mysql.New(mysql.Config{DSN: dsn, SkipInitializeWithVersion: true}), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
	}
}

// Open prepares a pooled store handle. It does not require the store to be
// reachable; use Probe to check connectivity.
func Open(o Options, log *zap.Logger) (*gorm.DB, error) {
	d, err := dialector(o)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Silent
	if o.LogQueries {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:                 zapLogger{zap: log, level: logLevel},
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", o.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db db() error: %w", err)
	}

	maxConns := o.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	// requests beyond the pool size wait for a free connection
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// Probe runs the liveness query against the store.
func Probe(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec("SELECT 1").Error
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureTables creates the tables for the given models when they are absent.
// Existing tables are left untouched.
func EnsureTables(ctx context.Context, db *gorm.DB, models ...any) error {
	tx := db.WithContext(ctx)
	if tx.Dialector.Name() == DriverMySQL {
		tx = tx.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci")
	}
	m := tx.Migrator()
	for _, model := range models {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}

// Checker runs the health query against a store handle.
type Checker struct {
	db *gorm.DB
}

func NewChecker(db *gorm.DB) *Checker { return &Checker{db: db} }

func (c *Checker) Check(ctx context.Context) error { return Probe(ctx, c.db) }

type zapLogger struct {
	zap   *zap.Logger
	level gormlogger.LogLevel
}

func (l zapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface { l.level = level; return l }
func (l zapLogger) Info(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.zap.Sugar().Infof(s, args...)
	}
}
func (l zapLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.zap.Sugar().Warnf(s, args...)
	}
}
func (l zapLogger) Error(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.zap.Sugar().Errorf(s, args...)
	}
}
func (l zapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}
	sql, rows := fc()
	dur := time.Since(begin)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.zap.Error("gorm query error",
			zap.Duration("duration", dur),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
			zap.String("code", ErrorCode(err)),
			zap.Error(err),
		)
		return
	}
	l.zap.Debug("gorm query", zap.Duration("duration", dur), zap.Int64("rows", rows), zap.String("sql", sql))
}
