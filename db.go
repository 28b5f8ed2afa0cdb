package main

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"manager/models"
	"manager/pkg/store"
)

// openStore selects the persistence backend once for the process lifetime.
// When the durable backend cannot be opened the process keeps running on the
// volatile store instead of crashing; the API behaves identically, records
// just do not survive a restart.
func openStore(cfg *Config, log *logrus.Logger) *store.DB {
	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Store.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Store.SQLitePath)
	case "memory":
		log.Info("using volatile in-memory store")
		return store.OpenVolatile()
	default:
		log.WithField("driver", cfg.Store.Driver).Warn("unknown store driver, using volatile store")
		return store.OpenVolatile()
	}

	db, err := store.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.WithError(err).WithField("driver", cfg.Store.Driver).
			Warn("durable store unavailable, falling back to volatile store")
		return store.OpenVolatile()
	}
	log.WithField("driver", cfg.Store.Driver).Info("durable store connected")
	migrate(db, log)
	return db
}

// migrate runs AutoMigrate per model so a failure on one does not block the
// others.
func migrate(db *store.DB, log *logrus.Logger) {
	gdb := db.Gorm()
	if gdb == nil {
		return
	}
	for name, model := range map[string]any{
		"users":    &models.User{},
		"orders":   &models.Order{},
		"finances": &models.Finance{},
		"projects": &models.Project{},
		"tasks":    &models.Task{},
		"earnings": &models.Earning{},
	} {
		if err := gdb.AutoMigrate(model); err != nil {
			log.WithError(err).Warnf("migration warning (%s)", name)
		}
	}
}
