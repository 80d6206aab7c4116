package config

// Config is the project configuration stored under .veriq/config.yml.
type Config struct {
	// ResultsDB is the DuckDB file holding ingested verification results,
	// relative to the project root.
	ResultsDB string `yaml:"results_db"`
	// Checkpoint is the curation checkpoint file, relative to the project
	// root.
	Checkpoint string `yaml:"checkpoint"`
	// ExportDir receives export files, relative to the project root.
	ExportDir string `yaml:"export_dir"`
	Serve     Serve  `yaml:"serve"`
}

// Serve configures the local report server.
type Serve struct {
	Addr string `yaml:"addr"`
}
