package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del proceso.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	OperatorKey string `yaml:"operator_key"`
}

// StoreConfig elige el backend del data access layer.
type StoreConfig struct {
	Driver string `yaml:"driver"` // memory | mongo | postgres

	MongoURI   string `yaml:"mongo_uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`

	DSN string `yaml:"dsn"`

	// SeedFile se importa al arrancar (solo driver memory).
	SeedFile string `yaml:"seed_file"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DashboardConfig son los ajustes de presentación; se pueden recargar en caliente.
type DashboardConfig struct {
	Title          string `yaml:"title"`
	HeaderImage    string `yaml:"header_image"`
	PageSize       int    `yaml:"page_size"`
	MapZoom        int    `yaml:"map_zoom"`
	HighlightColor string `yaml:"highlight_color"`
}

const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars reemplaza ${VAR} por su valor de entorno (si existe).
func substituteEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		if val, ok := os.LookupEnv(string(varName)); ok {
			return []byte(val)
		}
		return match
	})
}

// Load lee el YAML (con sustitución de ${VAR}), aplica overrides de env y defaults.
// path vacío => solo env + defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		data = substituteEnvVars(data)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// FromEnv es Load con CONFIG_FILE (opcional).
func FromEnv() (*Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	setString(&cfg.Server.OperatorKey, "OPERATOR_API_KEY")

	setString(&cfg.Store.Driver, "STORE_DRIVER")
	setString(&cfg.Store.MongoURI, "MONGO_URI")
	setString(&cfg.Store.Database, "MONGO_DATABASE")
	setString(&cfg.Store.Collection, "MONGO_COLLECTION")
	setString(&cfg.Store.DSN, "DB_DSN")
	setString(&cfg.Store.SeedFile, "SEED_FILE")

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	setString(&cfg.Dashboard.Title, "DASHBOARD_TITLE")
	setString(&cfg.Dashboard.HeaderImage, "DASHBOARD_HEADER_IMAGE")
	if v, err := strconv.Atoi(os.Getenv("DASHBOARD_PAGE_SIZE")); err == nil {
		cfg.Dashboard.PageSize = v
	}
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8050"
	}

	// Sin driver explícito: Mongo si hay URI, Postgres si hay DSN, si no memoria.
	if cfg.Store.Driver == "" {
		switch {
		case cfg.Store.MongoURI != "":
			cfg.Store.Driver = DriverMongo
		case cfg.Store.DSN != "":
			cfg.Store.Driver = DriverPostgres
		default:
			cfg.Store.Driver = DriverMemory
		}
	}
	cfg.Store.Driver = strings.ToLower(cfg.Store.Driver)
	if cfg.Store.Database == "" {
		cfg.Store.Database = "animalzoo"
	}
	if cfg.Store.Collection == "" {
		cfg.Store.Collection = "animals"
	}

	ApplyDashboardDefaults(&cfg.Dashboard)
}

// ApplyDashboardDefaults completa los ajustes de presentación.
func ApplyDashboardDefaults(d *DashboardConfig) {
	if d.Title == "" {
		d.Title = "Animal Shelter Dashboard"
	}
	if d.PageSize <= 0 {
		d.PageSize = 10
	}
	if d.MapZoom <= 0 {
		d.MapZoom = 10
	}
	if d.HighlightColor == "" {
		d.HighlightColor = "#D2F3FF"
	}
}

func validate(cfg *Config) error {
	switch cfg.Store.Driver {
	case DriverMemory:
	case DriverMongo:
		if cfg.Store.MongoURI == "" {
			return fmt.Errorf("store: mongo_uri is required for driver %q", cfg.Store.Driver)
		}
	case DriverPostgres:
		if cfg.Store.DSN == "" {
			return fmt.Errorf("store: dsn is required for driver %q", cfg.Store.Driver)
		}
	default:
		return fmt.Errorf("store: unsupported driver %q (must be memory, mongo or postgres)", cfg.Store.Driver)
	}
	if cfg.Dashboard.MapZoom > 20 {
		return fmt.Errorf("dashboard: map_zoom %d out of range (1-20)", cfg.Dashboard.MapZoom)
	}
	return nil
}
