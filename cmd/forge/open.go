package main

import (
	"fmt"

	"github.com/zulandar/teamforge/internal/config"
	"github.com/zulandar/teamforge/internal/db"
	"gorm.io/gorm"
)

// defaultConfigPath is where commands look for the config file unless
// --config is given.
const defaultConfigPath = "forge.yaml"

// openDB loads the config file and connects to the database.
func openDB(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return cfg, gdb, nil
}
