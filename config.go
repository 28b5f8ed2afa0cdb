package main

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process configuration, loaded once in main. Values come from
// an optional config.yaml next to the binary, overridden by MANAGER_*
// environment variables (e.g. MANAGER_STORE_DSN, MANAGER_SERVER_ADDR).
type Config struct {
	Server struct {
		Addr string
		Mode string
	}
	Store struct {
		Driver     string // postgres | sqlite | memory
		DSN        string
		SQLitePath string
	}
	Auth struct {
		Scheme string // plain | bcrypt
	}
	Orders struct {
		LedgerOnDone bool
	}
	Web struct {
		Root string
	}
}

func loadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "")
	v.SetDefault("store.driver", "")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.sqlite_path", "manager.db")
	v.SetDefault("auth.scheme", "plain")
	v.SetDefault("orders.ledger_on_done", true)
	v.SetDefault("web.root", "public")

	v.SetEnvPrefix("MANAGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Server.Addr = v.GetString("server.addr")
	cfg.Server.Mode = v.GetString("server.mode")
	cfg.Store.Driver = v.GetString("store.driver")
	cfg.Store.DSN = v.GetString("store.dsn")
	cfg.Store.SQLitePath = v.GetString("store.sqlite_path")
	cfg.Auth.Scheme = v.GetString("auth.scheme")
	cfg.Orders.LedgerOnDone = v.GetBool("orders.ledger_on_done")
	cfg.Web.Root = v.GetString("web.root")

	// Driver defaults follow the DSN: a configured Postgres DSN means durable
	// mode, otherwise the process runs on the volatile store.
	if cfg.Store.Driver == "" {
		if cfg.Store.DSN != "" {
			cfg.Store.Driver = "postgres"
		} else {
			cfg.Store.Driver = "memory"
		}
	}
	return cfg, nil
}
