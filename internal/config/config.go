// Package config loads generation settings from a YAML file and applies
// command line overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geoforge/osmcraft/internal/coords"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config describes one world generation run.
type Config struct {
	// BBox is the geographic area as "minLat,minLng,maxLat,maxLng".
	BBox string `yaml:"bbox"`

	// WorldDir is the output world directory.
	WorldDir string `yaml:"world_dir"`

	// InputFile reads raw OSM data from a local JSON file instead of
	// querying the Overpass API.
	InputFile string `yaml:"input_file"`

	OverpassURL string `yaml:"overpass_url"`

	// Scale stretches the projection; one meter maps to scale blocks.
	Scale float64 `yaml:"scale"`

	// GroundLevel is the base terrain height.
	GroundLevel int `yaml:"ground_level"`

	// Terrain selects the elevation source: "flat" (default), "fetch" for
	// real tile data, or "perlin" for synthetic noise terrain.
	Terrain string `yaml:"terrain"`

	// TerrainSeed seeds the synthetic terrain generator.
	TerrainSeed int64 `yaml:"terrain_seed"`

	// TileCache is the path of the elevation tile cache database.
	TileCache string `yaml:"tile_cache"`

	// FillGround fills every column up to the terrain surface before
	// elements are processed.
	FillGround bool `yaml:"fill_ground"`

	// ProgressAddr serves a websocket progress feed when set, for example
	// "127.0.0.1:9001".
	ProgressAddr string `yaml:"progress_addr"`

	Debug bool `yaml:"debug"`
}

// Terrain modes.
const (
	TerrainFlat   = "flat"
	TerrainFetch  = "fetch"
	TerrainPerlin = "perlin"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Scale:       1.0,
		GroundLevel: -62,
		Terrain:     TerrainFlat,
		TileCache:   "tiles.db",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that generation cannot recover from.
func (c Config) Validate() error {
	if c.BBox == "" {
		return fmt.Errorf("%w: bbox is required", ErrInvalidConfig)
	}
	if _, err := c.ParseBBox(); err != nil {
		return err
	}
	if c.WorldDir == "" {
		return fmt.Errorf("%w: world_dir is required", ErrInvalidConfig)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive", ErrInvalidConfig)
	}
	switch c.Terrain {
	case "", TerrainFlat, TerrainFetch, TerrainPerlin:
	default:
		return fmt.Errorf("%w: unknown terrain mode %q", ErrInvalidConfig, c.Terrain)
	}
	return nil
}

// ParseBBox parses the bbox setting into a geographic box.
func (c Config) ParseBBox() (coords.LLBBox, error) {
	parts := strings.Split(c.BBox, ",")
	if len(parts) != 4 {
		return coords.LLBBox{}, fmt.Errorf("%w: bbox needs four comma separated values", ErrInvalidConfig)
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return coords.LLBBox{}, fmt.Errorf("%w: bbox value %q", ErrInvalidConfig, part)
		}
		vals[i] = v
	}
	return coords.NewLLBBox(vals[0], vals[1], vals[2], vals[3])
}
