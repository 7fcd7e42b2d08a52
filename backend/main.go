package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"feedgate/backend/config"
	"feedgate/backend/global"
	"feedgate/backend/initialize"
	"feedgate/backend/server"

	"github.com/fsnotify/fsnotify"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file (optional)")
		envFile    = flag.String("env", ".env", "Dotenv file loaded before reading the environment")
	)
	flag.Parse()

	if err := run(*configPath, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, "feedgate:", err)
		os.Exit(1)
	}
}

func run(configPath, envFile string) error {
	config.LoadDotEnv(envFile)
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	initialize.InitLogger(cfg.Log, os.Stdout)

	if err := config.Watch(configPath, func(next *config.Config, e fsnotify.Event) {
		initialize.SetLogLevel(next.Log.Level)
		global.Logger.Info().Str("file", e.Name).Str("level", next.Log.Level).Msg("config reloaded")
	}); err != nil {
		global.Logger.Warn().Err(err).Msg("config hot reload disabled")
	}

	app, err := initialize.Build(cfg, initialize.Options{})
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			global.Logger.Error().Err(err).Msg("shutdown")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewHTTPServer(cfg.HTTP.Addr, app.Router, cfg.HTTP.ShutdownTimeout).Run(ctx)
}
