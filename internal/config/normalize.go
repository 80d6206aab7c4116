package config

// Normalize fills defaults for fields the config file omitted.
func Normalize(cfg *Config) {
	if cfg.ResultsDB == "" {
		cfg.ResultsDB = DefaultResultsDB
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = DefaultExportDir
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = DefaultServeAddr
	}
}
