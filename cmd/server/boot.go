package main

import (
	"fmt"

	"github.com/mytheresa/product-catalog/app/config"
	"github.com/mytheresa/product-catalog/app/database"
	"github.com/mytheresa/product-catalog/app/logger"
	"gorm.io/gorm"
)

// app bundles what every command needs.
type app struct {
	cfg *config.Config
	log *logger.Logger
	db  *gorm.DB
}

// boot loads config, builds the logger and connects to the database.
func boot() (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn("closing database", "error", err)
	}
	a.log.Sync()
}
