package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"manager/pkg/store"
	"manager/repos"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db := openStore(cfg, log)
	log.WithField("mode", db.Mode()).Info("store ready")

	app, err := buildApp(cfg, db, log)
	if err != nil {
		log.Fatalf("init repositories: %v", err)
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metricsMiddleware())

	setupRoutes(r, app)
	r.GET("/metrics", metricsHandler())
	r.NoRoute(spaFallback(cfg.Web.Root))

	log.WithField("addr", cfg.Server.Addr).Info("listening")
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// buildApp wires the repositories against the selected backend and seeds the
// administrator account.
func buildApp(cfg *Config, db *store.DB, log *logrus.Logger) (*App, error) {
	var creds repos.Credentials = repos.PlainCredentials{}
	if cfg.Auth.Scheme == "bcrypt" {
		creds = repos.BcryptCredentials{}
	}

	users := repos.NewUsers(db, creds)
	if err := users.EnsureSeed(context.Background()); err != nil {
		return nil, err
	}

	finance := repos.NewFinance(db)
	return &App{
		Users:    users,
		Orders:   repos.NewOrders(db, finance, cfg.Orders.LedgerOnDone),
		Finance:  finance,
		Projects: repos.NewProjects(db),
		Tasks:    repos.NewTasks(db),
		Earnings: repos.NewEarnings(db),
		Log:      log,
	}, nil
}
