package level

import (
	"fmt"
	"time"
)

// DefaultTileSize is applied when a config omits tileSize.
const DefaultTileSize = 32

// Config is the immutable input to one generation call. Zero values for
// tileSize and seed mean "unset" and are filled by Normalize; width and
// height have no defaults and must be positive.
type Config struct {
	Width      int       `json:"width" yaml:"width"`
	Height     int       `json:"height" yaml:"height"`
	TileSize   int       `json:"tileSize" yaml:"tile_size"`
	BiomeType  BiomeType `json:"biomeType" yaml:"biome"`
	Theme      string    `json:"theme" yaml:"theme"`
	Difficulty string    `json:"difficulty" yaml:"difficulty"`
	Seed       int64     `json:"seed" yaml:"seed"`
	Name       string    `json:"name,omitempty" yaml:"name"`
}

// ConfigError is the only fatal error in the generation taxonomy. It is
// raised before any scaffold allocation happens.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// Normalize fills defaults for unset fields and returns the effective config.
// A zero seed becomes a fresh wall-clock seed, so generation is
// non-deterministic unless the caller supplies one explicitly.
func (c Config) Normalize() Config {
	if c.TileSize == 0 {
		c.TileSize = DefaultTileSize
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Theme == "" {
		c.Theme = string(c.BiomeType)
	}
	if c.Difficulty == "" {
		c.Difficulty = "normal"
	}
	return c
}

// Validate rejects impossible dimensions. Call on a normalized config.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Reason: "must be positive"}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Reason: "must be positive"}
	}
	if c.TileSize <= 0 {
		return &ConfigError{Field: "tileSize", Reason: "must be positive"}
	}
	return nil
}
