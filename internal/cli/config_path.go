package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"veriq/internal/config"
)

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// resolveDBPath picks the results database: an explicit --db flag wins,
// otherwise the project config decides.
func resolveDBPath(dbFlag, configFlag string) (string, error) {
	if strings.TrimSpace(dbFlag) != "" {
		return dbFlag, nil
	}
	path, err := resolveConfigPath(configFlag)
	if err != nil {
		return "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", err
	}
	return dbPathFromConfig(path, cfg), nil
}

// resolveServe picks the listen address and database for serve, consulting
// the config only for values not given as flags.
func resolveServe(addrFlag, dbFlag, configFlag string) (addr, dbPath string, err error) {
	if strings.TrimSpace(addrFlag) != "" && strings.TrimSpace(dbFlag) != "" {
		return addrFlag, dbFlag, nil
	}
	path, err := resolveConfigPath(configFlag)
	if err != nil {
		return "", "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", "", err
	}
	addr = addrFlag
	if strings.TrimSpace(addr) == "" {
		addr = cfg.Serve.Addr
	}
	dbPath = dbFlag
	if strings.TrimSpace(dbPath) == "" {
		dbPath = dbPathFromConfig(path, cfg)
	}
	return addr, dbPath, nil
}

func dbPathFromConfig(configPath string, cfg config.Config) string {
	if filepath.IsAbs(cfg.ResultsDB) {
		return cfg.ResultsDB
	}
	return filepath.Join(config.RootFromConfigPath(configPath), cfg.ResultsDB)
}
