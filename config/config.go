package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"sjsage522/flyerworker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Source site
	BaseURL    string
	Category   string
	OutputFile string

	// Remote Chrome endpoint used to render shop pages
	ChromeAddr  string
	WaitTimeout time.Duration

	// Optional memcache-backed page cache for the category page
	MemcacheAddr string
	CacheTTL     time.Duration

	// Optional Redis stream publishing of parsed records
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	waitTimeout, _ := strconv.Atoi(getEnv("WAIT_TIMEOUT_SECONDS", "10"))
	cacheTTL, _ := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))

	return Config{
		BaseURL:              getEnv("FLYER_BASE_URL", "https://www.prospektmaschine.de"),
		Category:             getEnv("FLYER_CATEGORY", "/hypermarkte/"),
		OutputFile:           getEnv("FLYER_OUTPUT_FILE", "parsed_flyers.json"),
		ChromeAddr:           getEnv("CHROME_ADDR", "http://localhost:3000"),
		WaitTimeout:          time.Duration(waitTimeout) * time.Second,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		CacheTTL:             time.Duration(cacheTTL) * time.Second,
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "flyers"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,
		Environment:          getEnv("FLYER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return errors.NewConfiguration("invalid base URL: "+c.BaseURL, err)
	}
	if !strings.HasPrefix(c.Category, "/") {
		return errors.NewConfiguration("category path must start with '/': "+c.Category, nil)
	}
	if c.OutputFile == "" {
		return errors.NewConfiguration("output file name is empty", nil)
	}
	if _, err := url.ParseRequestURI(c.ChromeAddr); err != nil {
		return errors.NewConfiguration("invalid chrome address: "+c.ChromeAddr, err)
	}
	if c.WaitTimeout <= 0 {
		return errors.NewConfiguration("wait timeout must be positive", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
