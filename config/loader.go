package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// configPaths are tried in order when TRANSITHUB_CONFIG is unset
var configPaths = []string{"config.yml", "./configs/config.yml"}

// LoadAppConfig loads .env, the config file and environment overrides into Config
func LoadAppConfig() error {
	_ = godotenv.Load() // ignore missing file

	path := os.Getenv("TRANSITHUB_CONFIG")
	var cfg AppConfig
	var err error
	if path != "" {
		cfg, err = Load(path)
	} else {
		cfg, err = loadFirst(configPaths)
	}
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

func loadFirst(paths []string) (AppConfig, error) {
	for _, p := range paths {
		cfg, err := Load(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return Parse(nil)
}

// Load reads, validates and completes the configuration file at path
func Load(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return AppConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, applies environment overrides, validates and fills defaults.
// An empty document yields the default configuration.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 {
			return fmt.Errorf("invalid PORT: %s", port)
		}
		cfg.Server.Port = p
	}
	if key := os.Getenv("MTA_API_KEY"); key != "" {
		cfg.Feeds.APIKey = key
	}
	if csv := os.Getenv("STATIONS_CSV"); csv != "" {
		cfg.Stations.CSVPath = csv
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Favorites.Driver = "postgres"
		cfg.Favorites.DatabaseURL = dsn
	}
	if url := os.Getenv("NATS_URL"); url != "" {
		cfg.NATS.URL = url
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return nil
}
