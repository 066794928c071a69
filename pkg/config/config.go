package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret signs tokens when JWT_SECRET is unset. Known weakness:
// anyone reading the source can forge tokens for such deployments.
const DefaultJWTSecret = "vlat_exam_secret_key_2024"

// DefaultAllowedOrigins is the CORS allow-list used when CORS_ALLOWED_ORIGINS is unset.
var DefaultAllowedOrigins = []string{
	"https://vlatakash1.netlify.app",
	"http://localhost:3000",
	"http://localhost:5173",
}

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv          string        `mapstructure:"NODE_ENV" validate:"required"`
	Host            string        `mapstructure:"HOST" validate:"required"`
	Port            int           `mapstructure:"PORT" validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	DBDriver   string `mapstructure:"DB_DRIVER" validate:"required,oneof=mysql postgres sqlite"`
	DBHost     string `mapstructure:"MYSQLHOST" validate:"required"`
	DBUser     string `mapstructure:"MYSQLUSER" validate:"required"`
	DBPassword string `mapstructure:"MYSQLPASSWORD"`
	DBName     string `mapstructure:"MYSQLDATABASE" validate:"required"`
	DBPort     int    `mapstructure:"MYSQLPORT" validate:"gte=1,lte=65535"`
	DBMaxConns int    `mapstructure:"DB_MAX_CONNS" validate:"gte=1,lte=1000"`

	JWTSecret string `mapstructure:"JWT_SECRET" validate:"required"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	ExposeDiagnostics  bool     `mapstructure:"EXPOSE_DIAGNOSTICS"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gte=0"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST" validate:"gte=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var keys = []string{
	"NODE_ENV",
	"HOST",
	"PORT",
	"SHUTDOWN_TIMEOUT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"DB_DRIVER",
	"MYSQLHOST",
	"MYSQLUSER",
	"MYSQLPASSWORD",
	"MYSQLDATABASE",
	"MYSQLPORT",
	"DB_MAX_CONNS",
	"JWT_SECRET",
	"CORS_ALLOWED_ORIGINS",
	"EXPOSE_DIAGNOSTICS",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
}

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("NODE_ENV", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 3000)
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("MYSQLHOST", "mysql.railway.internal")
	v.SetDefault("MYSQLUSER", "root")
	v.SetDefault("MYSQLPASSWORD", "")
	v.SetDefault("MYSQLDATABASE", "railway")
	v.SetDefault("MYSQLPORT", 3306)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins)
	v.SetDefault("EXPOSE_DIAGNOSTICS", true)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	// Optional config file
	_ = v.ReadInConfig()

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}
	c.CORSAllowedOrigins = cleanList(c.CORSAllowedOrigins)

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &c, nil
}

// cleanList trims every entry of a comma separated setting and drops empty ones.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// IsProduction reports whether the store connection must request TLS.
func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// IsDevelopment reports whether client-facing error responses carry details.
func (c *Config) IsDevelopment() bool { return c.AppEnv == "development" }

// UsingDefaultSecret reports whether tokens are signed with DefaultJWTSecret.
func (c *Config) UsingDefaultSecret() bool { return c.JWTSecret == DefaultJWTSecret }

// HTTPAddr is the listen address.
func (c *Config) HTTPAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
