package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"bus-route-server/routing"
)

// DefaultPaths are searched in order when no config path is given.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Defaults returns the configuration used for every key the file omits.
func Defaults() AppConfig {
	opts := routing.DefaultOptions()
	return AppConfig{
		Server: ServerConfig{
			Port:         8080,
			AllowOrigins: []string{"*"},
		},
		Dataset: DatasetConfig{
			Path: "data/bus_lines.json",
		},
		Routing: RoutingConfig{
			ClusterToleranceM:   opts.ClusterToleranceM,
			PortalRadiusM:       opts.PortalRadiusM,
			PortalCandidates:    opts.PortalCandidates,
			WalkFactor:          opts.Weights.WalkFactor,
			BusFactor:           opts.Weights.BusFactor,
			TransferPenalty:     opts.Weights.TransferPenalty,
			BacktrackMultiplier: opts.Weights.BacktrackMultiplier,
			CurveBase:           opts.Weights.CurveBase,
			MaxExplored:         opts.MaxExplored,
			SearchTimeoutMS:     2000,
			StateKeyedSearch:    opts.StateKeyedSearch,
			TrimWalkM:           opts.TrimWalkMeters,
		},
		Cache: CacheConfig{
			Size:       1024,
			TTLSeconds: 300,
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path searches DefaultPaths
// and falls back to the defaults when none exists.
func Load(path string) (*AppConfig, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARNING: failed to read .env: %v", err)
	}

	cfg := Defaults()
	data, source, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", source, err)
		}
		log.Printf("Loaded configuration from %s", source)
	} else {
		log.Println("No config file found, using defaults")
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
		return data, path, nil
	}
	for _, p := range DefaultPaths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
	}
	return nil, "", nil
}

// applyEnv lets the deployment override the settings that differ between
// environments.
func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("ROUTE_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ROUTE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("ROUTE_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("ROUTE_DATASET_FORMAT"); v != "" {
		cfg.Dataset.Format = v
	}
	return nil
}

func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.RoutingOptions().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RoutingOptions converts the routing section for routing.NewEngine.
func (c AppConfig) RoutingOptions() routing.Options {
	r := c.Routing
	return routing.Options{
		ClusterToleranceM: r.ClusterToleranceM,
		PortalRadiusM:     r.PortalRadiusM,
		PortalCandidates:  r.PortalCandidates,
		Weights: routing.Weights{
			WalkFactor:          r.WalkFactor,
			BusFactor:           r.BusFactor,
			TransferPenalty:     r.TransferPenalty,
			BacktrackMultiplier: r.BacktrackMultiplier,
			CurveBase:           r.CurveBase,
		},
		MaxExplored:      r.MaxExplored,
		StateKeyedSearch: r.StateKeyedSearch,
		TrimWalkMeters:   r.TrimWalkM,
	}
}

func (c AppConfig) SearchTimeout() time.Duration {
	return time.Duration(c.Routing.SearchTimeoutMS) * time.Millisecond
}

func (c AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
