package config

import "time"

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// FeedsConfig lists the upstream feed endpoints and how they are fetched
type FeedsConfig struct {
	TimeoutMS       int               `yaml:"timeoutMS" validate:"gte=0"`
	APIKey          string            `yaml:"apiKey"`
	LineGroups      map[string]string `yaml:"lineGroups" validate:"omitempty,dive,keys,required,endkeys,url"`
	AlertCategories map[string]string `yaml:"alertCategories" validate:"omitempty,dive,keys,required,endkeys,url"`
	OutagesURL      string            `yaml:"outagesURL" validate:"omitempty,url"`
}

// Timeout returns the per-request fetch timeout
func (f FeedsConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutMS) * time.Millisecond
}

// StationsConfig points at the static station reference table
type StationsConfig struct {
	CSVPath string `yaml:"csvPath"`
}

// FavoritesConfig selects the favorites store backend
type FavoritesConfig struct {
	Driver      string `yaml:"driver" validate:"omitempty,oneof=sqlite postgres"`
	Path        string `yaml:"path"`
	DatabaseURL string `yaml:"databaseURL" validate:"required_if=Driver postgres"`
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Level    string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	FilePath string `yaml:"filePath"`
}

// NATSConfig enables publication of feed snapshots in watch mode
type NATSConfig struct {
	URL           string `yaml:"url" validate:"omitempty,url"`
	SubjectPrefix string `yaml:"subjectPrefix"`
}

// WatchConfig contains the polling interval used by watch mode
type WatchConfig struct {
	IntervalMS int `yaml:"intervalMS" validate:"gte=0"`
}

// Interval returns the watch polling interval
func (w WatchConfig) Interval() time.Duration {
	return time.Duration(w.IntervalMS) * time.Millisecond
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Feeds     FeedsConfig     `yaml:"feeds"`
	Stations  StationsConfig  `yaml:"stations"`
	Favorites FavoritesConfig `yaml:"favorites"`
	Logging   LoggingConfig   `yaml:"logging"`
	NATS      NATSConfig      `yaml:"nats"`
	Watch     WatchConfig     `yaml:"watch"`
}
