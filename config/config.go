package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// InputsConfig points at the CSV inputs for one scheduling run.
type InputsConfig struct {
	LookbackPath string `json:"lookbackPath"`
	ForecastPath string `json:"forecastPath"`
}

// OptimizerConfig carries the solver knobs that operators occasionally tune.
// Zero values fall back to the built-in defaults.
type OptimizerConfig struct {
	MinElevationFt     float64 `json:"minElevationFt"`
	FloatBufferFt      float64 `json:"floatBufferFt"`
	RaftingFloorMW     float64 `json:"raftingFloorMw"`
	StorageBreakpoints int     `json:"storageBreakpoints"`
	SolveTimeoutSecs   int     `json:"solveTimeoutSecs"`
}

// RaftingConfig selects the recreational release schedule.
type RaftingConfig struct {
	WaterYearType string `json:"waterYearType"`
	// Enabled gates the window constraints entirely, for off-season runs.
	Enabled bool `json:"enabled"`
}

type SupabaseConfig struct {
	Url string `json:"url"`
	// key is specified via env var
	Schema string `json:"schema"`
}

type DataPlatformConfig struct {
	UploadIntervalSecs int            `json:"uploadIntervalSecs"`
	Supabase           SupabaseConfig `json:"supabase"`
}

// StoreConfig locates the local run database.
type StoreConfig struct {
	Path string `json:"path"`
}

type Config struct {
	Inputs       InputsConfig       `json:"inputs"`
	Optimizer    OptimizerConfig    `json:"optimizer"`
	Rafting      RaftingConfig      `json:"rafting"`
	DataPlatform DataPlatformConfig `json:"dataPlatform"`
	Store        StoreConfig        `json:"store"`
	// Timezone names the plant-local zone for window and annotation
	// arithmetic, e.g. "America/Los_Angeles".
	Timezone string `json:"timezone"`
}

func Read(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	err = json.Unmarshal(content, &config)
	if err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return config, nil
}

// Location resolves the configured timezone, defaulting to the plant's
// Pacific zone when unset.
func (c Config) Location() (*time.Location, error) {
	name := c.Timezone
	if name == "" {
		name = "America/Los_Angeles"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}
