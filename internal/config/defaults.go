package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			PrivacyThreshold: 0,
			DefaultSort:      "date",
			ThenBy:           "",
		},
		Search: SearchConfig{
			MatchStrategy:       "substring",
			ExpressionCacheSize: 256,
		},
		Storage: StorageConfig{
			Path:              "~/.config/mediacat",
			SQLiteFile:        "mediacat.db",
			Driver:            "sqlite3",
			SQLiteJournalMode: "wal",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Extensions: map[string]string{},
	}
}
