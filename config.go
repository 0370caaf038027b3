package bullet

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DefaultLibraryName is the base name of the native Bullet library.
const DefaultLibraryName = "gdx-bullet"

// Config controls how a Context finds and loads the native library.
type Config struct {
	// LibraryName is mapped to a platform file name by MapLibraryName.
	LibraryName string `env:"BULLET_LIBRARY_NAME" envDefault:"gdx-bullet"`
	// LibraryPath, when set, is loaded as-is instead of LibraryName.
	LibraryPath string `env:"BULLET_LIBRARY_PATH"`
	// Logging enables reports of lifetime misuse and library loading.
	Logging bool `env:"BULLET_LOGGING" envDefault:"true"`
	// Debug enables scene graph sanity warnings (see SetDebugMode).
	Debug bool `env:"BULLET_DEBUG" envDefault:"false"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{LibraryName: DefaultLibraryName, Logging: true}
}

// ParseConfigEnv loads configuration from environment variables.
func ParseConfigEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("bullet: parse env: %w", err)
	}
	return cfg, nil
}

// LoadConfigFromEnv returns the environment configuration, falling back to
// DefaultConfig when the environment cannot be parsed.
func LoadConfigFromEnv() Config {
	cfg, err := ParseConfigEnv()
	if err != nil {
		return DefaultConfig()
	}
	if cfg.LibraryName == "" {
		cfg.LibraryName = DefaultLibraryName
	}
	return cfg
}

// libraryPath returns the file the loader should open.
func (c Config) libraryPath() string {
	if c.LibraryPath != "" {
		return c.LibraryPath
	}
	name := c.LibraryName
	if name == "" {
		name = DefaultLibraryName
	}
	return MapLibraryName(name)
}
