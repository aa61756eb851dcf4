package main

import (
	"fmt"

	"github.com/zulandar/attendant/internal/config"
	"github.com/zulandar/attendant/internal/db"
	"gorm.io/gorm"
)

const defaultConfigPath = "attendant.yaml"

// connectFromConfig loads the config file and opens the configured database.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}

// openDatabase opens the backend named by the config.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		gormDB, err := db.ConnectSQLite(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite at %s: %w", cfg.Database.Path, err)
		}
		return gormDB, nil
	case "mysql":
		gormDB, err := db.Connect(cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to mysql at %s:%d: %w", cfg.Database.Host, cfg.Database.Port, err)
		}
		return gormDB, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
