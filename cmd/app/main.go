package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"FinScore/internal/di"
	"FinScore/internal/domain/models"
	"FinScore/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	scorePath := flag.String("score", "", "score one request from a JSON file (- for stdin) and exit")
	importPath := flag.String("import", "", "load candles from a JSON file into ClickHouse and exit")
	symbol := flag.String("symbol", "", "symbol for imported candles that carry none")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	switch {
	case *scorePath != "":
		if err := scoreFile(cfg, *scorePath, os.Stdout); err != nil {
			log.Fatalf("score failed: %v", err)
		}
		return
	case *importPath != "":
		n, err := importFile(cfg, *importPath, *symbol)
		if err != nil {
			log.Fatalf("import failed: %v", err)
		}
		log.Printf("imported %d candles into %s.%s", n, cfg.ClickHouse.Database, cfg.ClickHouse.Table)
		return
	}

	log.Printf("env=%s weight_mode=%s clickhouse=%t redis=%t",
		cfg.Environment, cfg.Scoring.WeightMode, cfg.ClickHouse.Enabled, cfg.Cache.Redis.Enabled)

	// Wire DI: Initialize all dependencies
	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	defer cleanup()

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		cleanup()
		os.Exit(1)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func scoreFile(cfg *config.Config, path string, out io.Writer) error {
	f, err := openInput(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var req models.ScoreRequest
	if err := json.NewDecoder(f).Decode(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	engine, err := di.InitializeEngine(cfg)
	if err != nil {
		return err
	}
	rep := engine.Score(engine.InputFromRequest(req))

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func importFile(cfg *config.Config, path, symbol string) (int, error) {
	if !cfg.ClickHouse.Enabled {
		return 0, errors.New("clickhouse is disabled in config")
	}
	f, err := openInput(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var candles []models.Candle
	if err := json.NewDecoder(f).Decode(&candles); err != nil {
		return 0, fmt.Errorf("decode candles: %w", err)
	}
	for i := range candles {
		if candles[i].Symbol == "" {
			candles[i].Symbol = symbol
		}
	}

	store, cleanup, err := di.InitializePriceStore(cfg)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	return store.StoreCandles(ctx, candles)
}
