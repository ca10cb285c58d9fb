package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/electronjoe/PhotoMap/internal/catalog"
	"github.com/electronjoe/PhotoMap/internal/config"
	"github.com/electronjoe/PhotoMap/internal/extract"
	"github.com/electronjoe/PhotoMap/internal/geocode"
	"github.com/electronjoe/PhotoMap/internal/metrics"
	"github.com/electronjoe/PhotoMap/internal/photo"
)

func main() {
	// Parse command-line flag for the root directory
	rootDir := flag.String("root", "", "Root directory containing sub-directories with images")
	configPath := flag.String("config", "", "Path to config.json (default ~/.photomap/config.json)")
	metricsFile := flag.String("metrics-file", "", "Write Prometheus metrics to this file when done")
	flag.Parse()

	if *rootDir == "" {
		log.Fatal("Please provide a root directory using the -root flag")
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Read()
	}
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cfg.NewLogger(os.Stderr)
	if err := run(ctx, cfg, *rootDir, *metricsFile, logger); err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, rootDir, metricsFile string, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	provider, err := geocode.NewProvider(geocode.ProviderConfig{
		Type:      geocode.ProviderType(cfg.Geocoder.Provider),
		APIKey:    cfg.Geocoder.APIKey,
		RateLimit: cfg.Geocoder.RateLimit,
		UserAgent: cfg.Geocoder.UserAgent,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create geocoder: %w", err)
	}

	opts := catalog.Options{
		Geocoder:     provider,
		ProviderName: cfg.Geocoder.Provider,
		Metrics:      m,
		Logger:       logger,
	}
	if cfg.Cache.Enabled {
		opts.CachePath = cfg.Cache.Path
	}

	extractor := extract.New(photo.NewDecoder(cfg.MaxFileSize), logger, m)
	scanner, err := catalog.NewScanner(extractor, opts)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	sum, err := scanner.Scan(ctx, rootDir)
	if err != nil {
		return err
	}
	logger.Info("Scan complete",
		"albums", sum.Albums,
		"photos", sum.Photos,
		"located", sum.Located,
		"cached", sum.Cached,
	)

	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
