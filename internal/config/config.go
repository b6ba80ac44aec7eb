package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings read from the environment
type Config struct {
	AppEnv           string `validate:"required,oneof=development production test"`
	Port             string `validate:"required,numeric"`
	LogLevel         string `validate:"required"`
	SummaryImagePath string
	CreateWorkers    int `validate:"min=1,max=64"`

	DB      DBConfig
	Swagger SwaggerConfig
}

// DBConfig selects and addresses the record store
type DBConfig struct {
	Driver   string `validate:"required,oneof=mysql postgres sqlite3"`
	Host     string `validate:"required_unless=Driver sqlite3"`
	Port     string `validate:"required_unless=Driver sqlite3"`
	User     string `validate:"required_unless=Driver sqlite3"`
	Password string
	Name     string `validate:"required_unless=Driver sqlite3"`
	Path     string `validate:"required_if=Driver sqlite3"`

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SwaggerConfig struct {
	Host    string
	Schemes []string
}

// Load reads .env (when present) and the process environment.
// envFile may be empty to use the default ".env".
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	workers, err := getEnvInt("CREATE_WORKERS", 8)
	if err != nil {
		return nil, err
	}
	maxOpen, err := getEnvInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, err
	}
	maxIdle, err := getEnvInt("DB_MAX_IDLE_CONNS", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SummaryImagePath: getEnv("SUMMARY_IMAGE_PATH", "cache/summary.png"),
		CreateWorkers:    workers,
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", "mysql"),
			Host:            getEnv("DB_HOST", "127.0.0.1"),
			Port:            getEnv("DB_PORT", "3306"),
			User:            getEnv("DB_USER", "root"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            getEnv("DB_NAME", "paises"),
			Path:            os.Getenv("DB_PATH"),
			MaxOpenConns:    maxOpen,
			MaxIdleConns:    maxIdle,
			ConnMaxLifetime: time.Hour,
		},
		Swagger: SwaggerConfig{
			Host:    os.Getenv("SWAGGER_HOST"),
			Schemes: splitList(os.Getenv("SWAGGER_SCHEMES")),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// DSN renders the connection string for the configured driver
func (d DBConfig) DSN() string {
	switch d.Driver {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, d.Port)
		mc.DBName = d.Name
		mc.ParseTime = true
		mc.Loc = time.UTC
		return mc.FormatDSN()
	case "postgres":
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			d.Host, d.User, d.Password, d.Name, d.Port,
		)
	default:
		return d.Path
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
