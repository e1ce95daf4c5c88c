package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/shirushi/data/db/documents.db"
	}
	if cfg.Storage.IndexPath == "" {
		cfg.Storage.IndexPath = "/usr/local/var/shirushi/data/indices/bleve"
	}
	if cfg.Viewer.SentimentFocus == 0 {
		cfg.Viewer.SentimentFocus = 50
	}
	if cfg.Viewer.MarginGrowthFocus == 0 {
		cfg.Viewer.MarginGrowthFocus = 50
	}
	if cfg.Viewer.AxisLimit == 0 {
		cfg.Viewer.AxisLimit = 5
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 20
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.TitleBoost == 0 {
		cfg.Search.TitleBoost = 2.0
	}
	if cfg.Import.Extensions == nil {
		cfg.Import.Extensions = []string{".json"}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Import.Directories) > 0 && cfg.Import.Recursive == nil {
		t := true
		cfg.Import.Recursive = &t
	}
}
