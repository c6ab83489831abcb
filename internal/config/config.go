// Package config holds the runtime settings of explorekit and their
// defaults. Values are layered by viper: flags, EXPLOREKIT_* environment
// variables, the config file, then the defaults below.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Auth   AuthConfig   `mapstructure:"auth" yaml:"auth"`
	Finder FinderConfig `mapstructure:"finder" yaml:"finder"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr" yaml:"addr"`
	SessionSecret  string        `mapstructure:"session_secret" yaml:"session_secret"`
	SessionTTL     time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// AuthConfig enables the login page when Username is set. PasswordHash is a
// bcrypt hash, see `explorekit hash-password`.
type AuthConfig struct {
	Username     string `mapstructure:"username" yaml:"username"`
	PasswordHash string `mapstructure:"password_hash" yaml:"password_hash"`
}

func (a AuthConfig) Enabled() bool { return a.Username != "" }

type FinderConfig struct {
	Provider           string        `mapstructure:"provider" yaml:"provider"`
	NominatimURL       string        `mapstructure:"nominatim_url" yaml:"nominatim_url"`
	OverpassURL        string        `mapstructure:"overpass_url" yaml:"overpass_url"`
	ElasticURL         string        `mapstructure:"elastic_url" yaml:"elastic_url"`
	ElasticIndex       string        `mapstructure:"elastic_index" yaml:"elastic_index"`
	UserAgent          string        `mapstructure:"user_agent" yaml:"user_agent"`
	Amenity            string        `mapstructure:"amenity" yaml:"amenity"`
	SearchRadiusMeters int           `mapstructure:"search_radius_m" yaml:"search_radius_m"`
	RankingCeilingKm   float64       `mapstructure:"ranking_ceiling_km" yaml:"ranking_ceiling_km"`
	DefaultViewRadius  float64       `mapstructure:"default_view_radius_m" yaml:"default_view_radius_m"`
	MaxResults         int           `mapstructure:"max_results" yaml:"max_results"`
	Timeout            time.Duration `mapstructure:"timeout" yaml:"timeout"`
	GeocodeRPS         float64       `mapstructure:"geocode_rps" yaml:"geocode_rps"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

const (
	ProviderOverpass = "overpass"
	ProviderElastic  = "elastic"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":9595",
			SessionSecret:  "change-me-explorekit-session-secret",
			SessionTTL:     2 * time.Hour,
			MaxUploadBytes: 32 << 20,
		},
		Finder: FinderConfig{
			Provider:           ProviderOverpass,
			NominatimURL:       "https://nominatim.openstreetmap.org",
			OverpassURL:        "https://overpass-api.de/api/interpreter",
			ElasticURL:         "http://localhost:9200",
			ElasticIndex:       "places",
			UserAgent:          "explorekit/0.3 (food finder)",
			Amenity:            "restaurant",
			SearchRadiusMeters: 5000,
			RankingCeilingKm:   5,
			DefaultViewRadius:  1000,
			MaxResults:         100,
			Timeout:            30 * time.Second,
			GeocodeRPS:         1,
			CacheTTL:           10 * time.Minute,
		},
	}
}

// SetDefaults registers every default with v so env vars and files can
// override individual keys.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.session_secret", d.Server.SessionSecret)
	v.SetDefault("server.session_ttl", d.Server.SessionTTL)
	v.SetDefault("server.max_upload_bytes", d.Server.MaxUploadBytes)
	v.SetDefault("auth.username", d.Auth.Username)
	v.SetDefault("auth.password_hash", d.Auth.PasswordHash)
	v.SetDefault("finder.provider", d.Finder.Provider)
	v.SetDefault("finder.nominatim_url", d.Finder.NominatimURL)
	v.SetDefault("finder.overpass_url", d.Finder.OverpassURL)
	v.SetDefault("finder.elastic_url", d.Finder.ElasticURL)
	v.SetDefault("finder.elastic_index", d.Finder.ElasticIndex)
	v.SetDefault("finder.user_agent", d.Finder.UserAgent)
	v.SetDefault("finder.amenity", d.Finder.Amenity)
	v.SetDefault("finder.search_radius_m", d.Finder.SearchRadiusMeters)
	v.SetDefault("finder.ranking_ceiling_km", d.Finder.RankingCeilingKm)
	v.SetDefault("finder.default_view_radius_m", d.Finder.DefaultViewRadius)
	v.SetDefault("finder.max_results", d.Finder.MaxResults)
	v.SetDefault("finder.timeout", d.Finder.Timeout)
	v.SetDefault("finder.geocode_rps", d.Finder.GeocodeRPS)
	v.SetDefault("finder.cache_ttl", d.Finder.CacheTTL)
}

// Load decodes the merged configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch strings.ToLower(c.Finder.Provider) {
	case ProviderOverpass, ProviderElastic:
	default:
		return fmt.Errorf("finder.provider must be %q or %q, got %q", ProviderOverpass, ProviderElastic, c.Finder.Provider)
	}
	if c.Finder.SearchRadiusMeters <= 0 {
		return fmt.Errorf("finder.search_radius_m must be positive")
	}
	if c.Finder.RankingCeilingKm <= 0 {
		return fmt.Errorf("finder.ranking_ceiling_km must be positive")
	}
	if c.Finder.GeocodeRPS <= 0 {
		return fmt.Errorf("finder.geocode_rps must be positive")
	}
	if c.Auth.Enabled() && c.Auth.PasswordHash == "" {
		return fmt.Errorf("auth.password_hash is required when auth.username is set")
	}
	if len(c.Server.SessionSecret) < 16 {
		return fmt.Errorf("server.session_secret must be at least 16 bytes")
	}
	return nil
}
