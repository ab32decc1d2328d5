// Package main - Entry point for the expenditure-decile lookup server
package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"expenditure-decile/api"
	"expenditure-decile/core/catalog"
	"expenditure-decile/core/lookup"
	"expenditure-decile/internal/config"
	"expenditure-decile/internal/logging"
)

const version = "1.0.0"

func main() {
	// Optional .env for deployment environments; flags still win.
	_ = godotenv.Load()

	cfgPath := flag.String("config", "", "config file path")
	addr := flag.String("addr", "", "listen address (overrides config)")
	tablePath := flag.String("table", "", "boundary table path (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logging.Fatal("loading config", zap.Error(err))
		}
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("initializing logging", zap.Error(err))
	}
	defer logging.Sync()

	listen := cfg.Server.Addr
	if v := os.Getenv("DECILE_ADDR"); v != "" {
		listen = v
	}
	if *addr != "" {
		listen = *addr
	}

	table := cfg.Data.TablePath
	if v := os.Getenv("DECILE_TABLE"); v != "" {
		table = v
	}
	if *tablePath != "" {
		table = *tablePath
	}

	cat, err := catalog.LoadOrDefault(cfg.Data.CatalogPath)
	if err != nil {
		logging.Fatal("loading catalog", zap.Error(err))
	}

	loader := lookup.NewLoader(table, cat)
	apiServer := api.NewServer(version, loader)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	server := &http.Server{
		Addr:        listen,
		Handler:     mux,
		ReadTimeout: time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
	}

	logging.Info("lookup server starting",
		zap.String("addr", listen),
		zap.String("table", table),
		zap.String("version", version))

	if err := server.ListenAndServe(); err != nil {
		logging.Fatal("server exited", zap.Error(err))
	}
}
