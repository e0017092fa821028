package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "ACK"

// Config is the container for app configuration
type Config struct {
	// GithubAPIAddress - address for rest api with protocol
	GithubAPIAddress string `default:"https://api.github.com"`

	// GithubToken - auth token for github api (optional, --gh-token flag takes precedence)
	GithubToken string `default:""`

	// CratesAPIAddress - address for crates.io api with protocol
	CratesAPIAddress string `default:"https://crates.io/api/v1"`

	// CratesUserAgent - crates.io requires a user agent identifying the client
	CratesUserAgent string `default:"acknowledgements (https://github.com/anvlkv/acknowledgements)"`

	// CratesRateInterval - minimum interval between crates.io requests
	CratesRateInterval time.Duration `default:"1s"`

	// HTTPTimeout - timeout for a single http request
	HTTPTimeout time.Duration `default:"30s"`

	// CacheDir - directory for the cache database, defaults to the user cache directory
	CacheDir string `default:""`

	// CacheFileName - bolt db file name
	CacheFileName string `default:"cache.db"`

	// CacheBucketName - bolt db bucket name
	CacheBucketName string `default:"acknowledgements"`

	// CacheOpenTimeout - how long to wait for the cache file held by another process
	CacheOpenTimeout time.Duration `default:"1s"`

	// CacheMemorySize - number of entries kept in memory when the cache file can't be opened
	CacheMemorySize int `default:"10000"`

	// LogLevel - logrus level name
	LogLevel string `default:"info"`
}

// loadConfig reads .env file, if present, and the environment.
func loadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var conf Config
	if err := envconfig.Process(envPrefix, &conf); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	return conf, nil
}

// cachePath returns path of the cache database file.
func (c Config) cachePath() (string, error) {
	dir := c.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("finding user cache dir: %w", err)
		}
		dir = filepath.Join(base, "acknowledgements_cache")
	}

	return filepath.Join(dir, c.CacheFileName), nil
}
