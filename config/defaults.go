package config

const mtaFeedBase = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/"

// Default values applied after validation
const (
	DefaultPort          = 5090
	DefaultTimeoutMS     = 10000
	DefaultStationsCSV   = "MTA_Subway_Stations.csv"
	DefaultFavoritesPath = "database.db"
	DefaultLogLevel      = "info"
	DefaultSubjectPrefix = "transithub"
	DefaultWatchInterval = 30000
)

// DefaultLineGroups maps subway line groups to their GTFS-RT trip update feeds
func DefaultLineGroups() map[string]string {
	return map[string]string{
		"ACE":      mtaFeedBase + "nyct%2Fgtfs-ace",
		"BDFMFS":   mtaFeedBase + "nyct%2Fgtfs-bdfm",
		"G":        mtaFeedBase + "nyct%2Fgtfs-g",
		"JZ":       mtaFeedBase + "nyct%2Fgtfs-jz",
		"NQRW":     mtaFeedBase + "nyct%2Fgtfs-nqrw",
		"L":        mtaFeedBase + "nyct%2Fgtfs-l",
		"1234567S": mtaFeedBase + "nyct%2Fgtfs",
		"SIR":      mtaFeedBase + "nyct%2Fgtfs-si",
	}
}

// DefaultAlertCategories maps alert categories to their JSON alert feeds
func DefaultAlertCategories() map[string]string {
	return map[string]string{
		"all_alerts":    mtaFeedBase + "camsys%2Fall-alerts.json",
		"subway_alerts": mtaFeedBase + "camsys%2Fsubway-alerts.json",
		"bus_alerts":    mtaFeedBase + "camsys%2Fbus-alerts.json",
		"lirr_alerts":   mtaFeedBase + "camsys%2Flirr-alerts.json",
		"mnr_alerts":    mtaFeedBase + "camsys%2Fmnr-alerts.json",
	}
}

// DefaultOutagesURL is the elevator and escalator outage feed
const DefaultOutagesURL = mtaFeedBase + "nyct%2Fnyct_ene.json"

// Defaults returns a fully populated configuration
func Defaults() AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Feeds.TimeoutMS == 0 {
		cfg.Feeds.TimeoutMS = DefaultTimeoutMS
	}
	if len(cfg.Feeds.LineGroups) == 0 {
		cfg.Feeds.LineGroups = DefaultLineGroups()
	}
	if len(cfg.Feeds.AlertCategories) == 0 {
		cfg.Feeds.AlertCategories = DefaultAlertCategories()
	}
	if cfg.Feeds.OutagesURL == "" {
		cfg.Feeds.OutagesURL = DefaultOutagesURL
	}
	if cfg.Stations.CSVPath == "" {
		cfg.Stations.CSVPath = DefaultStationsCSV
	}
	if cfg.Favorites.Driver == "" {
		cfg.Favorites.Driver = "sqlite"
	}
	if cfg.Favorites.Path == "" {
		cfg.Favorites.Path = DefaultFavoritesPath
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.NATS.SubjectPrefix == "" {
		cfg.NATS.SubjectPrefix = DefaultSubjectPrefix
	}
	if cfg.Watch.IntervalMS == 0 {
		cfg.Watch.IntervalMS = DefaultWatchInterval
	}
}
