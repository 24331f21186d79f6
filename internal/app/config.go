package app

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/shhac/cavern/internal/domain"
	"github.com/shhac/cavern/internal/storage"
)

const (
	envPrefix      = "CAVERN"
	configFileName = "cavern.yaml"

	keyDebug          = "debug"
	keyStoragePath    = "storage_path"
	keyDefaultTimeout = "default_timeout"
)

// Config holds application-wide configuration.
type Config struct {
	// Debug enables debug logging and additional diagnostics
	Debug bool

	// StoragePath is the directory where connections and settings are stored
	StoragePath string

	// DefaultTimeout is given to newly created connections
	DefaultTimeout time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		StoragePath:    "", // Will use DefaultStoragePath() from storage package
		DefaultTimeout: domain.DefaultTimeout,
	}
}

// ConfigFromEnv loads the configuration from CAVERN_* environment variables
// and the optional cavern.yaml in the storage directory. Environment
// variables win over the file.
//
//	CAVERN_DEBUG=true
//	CAVERN_STORAGE_PATH=/path/to/dir
//	CAVERN_DEFAULT_TIMEOUT=30s
func ConfigFromEnv() (*Config, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	def := DefaultConfig()
	v.SetDefault(keyDebug, def.Debug)
	v.SetDefault(keyStoragePath, def.StoragePath)
	v.SetDefault(keyDefaultTimeout, def.DefaultTimeout)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	storagePath := v.GetString(keyStoragePath)
	if storagePath == "" {
		p, err := storage.DefaultStoragePath()
		if err != nil {
			return nil, fmt.Errorf("failed to determine storage path: %w", err)
		}
		storagePath = p
	}

	v.SetConfigFile(filepath.Join(storagePath, configFileName))
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", configFileName, err)
	}

	cfg := &Config{
		Debug:          v.GetBool(keyDebug),
		StoragePath:    v.GetString(keyStoragePath),
		DefaultTimeout: v.GetDuration(keyDefaultTimeout),
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = storagePath
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = domain.DefaultTimeout
	}
	return cfg, nil
}
