package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"model-viewer/internal/assets"
	"model-viewer/internal/config"
	"model-viewer/internal/debug"
	"model-viewer/internal/graphics"
	"model-viewer/internal/logger"
	"model-viewer/internal/viewer"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "viewer config file (YAML)")
	dotEnv := flag.String("env", ".env", "file of KEY=VALUE overrides")
	flag.Parse()

	if err := config.LoadDotEnv(*dotEnv); err != nil {
		logger.New("").Logf("env: %v", err)
	}
	cfg, cfgErr := config.Load(*configPath)
	cfg = config.ApplyEnv(cfg, os.LookupEnv)
	log := logger.New(cfg.LogFile)
	if cfgErr != nil {
		log.Logf("%v (using defaults)", cfgErr)
		cfg = config.ApplyEnv(config.Default(), os.LookupEnv)
	}
	os.Exit(run(cfg, log))
}

func run(cfg config.Config, log *logger.Logger) int {
	fetcher := assets.NewFetcher(cfg.Assets.Root, cfg.Assets.CacheDir)
	win, err := graphics.Open(cfg.Window)
	if err != nil {
		log.Logf("window: %v", err)
		return 1
	}
	defer win.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	session := viewer.New(cfg, win, fetcher, graphics.NewDecoder(win.Lighting()), log)
	if err := session.Start(ctx); err != nil {
		log.Logf("start: %v", err)
		return 1
	}
	defer session.Stop()

	dbg := debug.New()
	dbg.SetShowFPS(cfg.ShowFPS)
	dbg.SetShowMemAlloc(cfg.ShowMemAlloc)
	dbg.Stats = func() debug.Stats {
		return debug.Stats{
			Renders:   session.Renders(),
			Scheduled: session.Scheduled(),
			LoadState: session.LoadState().String(),
		}
	}

	log.Logf("viewing %s from %s", cfg.Assets.Geometry, cfg.Assets.Root)
	win.Run(ctx, dbg.Draw)
	return 0
}
