package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"sjsage522/flyerworker/config"
	"sjsage522/flyerworker/helpers"
	"sjsage522/flyerworker/internal/flyer"
	"sjsage522/flyerworker/logger"
	"sjsage522/flyerworker/services/cache"
	"sjsage522/flyerworker/services/publisher"
	"sjsage522/flyerworker/services/render"
	"sjsage522/flyerworker/services/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd creates the flyerworker command
func newRootCmd() *cobra.Command {
	var category, output string

	cmd := &cobra.Command{
		Use:           "flyerworker",
		Short:         "Parses retailer flyers from a category listing site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(category, output)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "shop category path, e.g. /hypermarkte/")
	cmd.Flags().StringVar(&output, "output", "", "output JSON file name")

	return cmd
}

// run executes one parsing run. Parse failures surface through logs
// and the output file only; an error return is reserved for unusable
// configuration.
func run(category, output string) error {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration; flags override the environment
	cfg := config.LoadConfig()
	if category != "" {
		cfg.Category = category
	}
	if output != "" {
		cfg.OutputFile = output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("category", cfg.Category).
		Str("output", cfg.OutputFile).
		Msg("Starting flyer parsing run")

	// Optional page cache
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("Page cache enabled")
	}

	// The renderer is handed to the pipeline, which owns its release
	renderer := render.NewChromeRenderer(cfg.ChromeAddr)

	discoverer := flyer.NewCategoryShopDiscoverer(cfg.BaseURL, helpers.FetchWithRandomHeaders, cacheSvc, cfg.CacheTTL)
	collector := flyer.NewShopFlyerCollector(renderer, cfg.BaseURL, cfg.WaitTimeout)
	pipeline := flyer.NewFlyerParsingPipeline(discoverer, collector, renderer)

	records := pipeline.Run(cfg.Category)

	// Write failure loses the file, not the run
	store := storage.NewJSONFileStore(cfg.OutputFile)
	if err := store.Write(records); err != nil {
		logger.ForStorage().Error().Err(err).Msg("Failed to write flyers to file")
	} else {
		logger.ForStorage().
			Info().
			Str("file", cfg.OutputFile).
			Int("count", len(records)).
			Msg("Flyers written to file")
	}

	// Optional Redis stream publishing
	if cfg.RedisAddr != "" {
		publishRecords(&cfg, records)
	}

	return nil
}

// publishRecords publishes each record to the configured Redis streams
func publishRecords(cfg *config.Config, records []flyer.FlyerRecord) {
	log := logger.ForPublisher()

	pub := publisher.NewRedisPublisher(
		context.Background(),
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisStreamCount,
		cfg.RedisStreamMaxLength,
	)
	defer pub.Close()

	published := 0
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			log.Error().Err(err).Str("shop", record.ShopName).Msg("Failed to marshal record")
			continue
		}
		if err := pub.Publish(record.ShopName, data); err != nil {
			log.Error().Err(err).Str("shop", record.ShopName).Msg("Failed to publish record")
			continue
		}
		published++
	}

	if err := pub.TrimStreams(); err != nil {
		log.Error().Err(err).Msg("Failed to trim streams")
	}

	log.Info().Int("published", published).Msg("Records published")
}
