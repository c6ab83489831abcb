package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"explorekit/internal/config"
	"explorekit/internal/finder"
	"explorekit/internal/geo"
	"explorekit/internal/server"
	"explorekit/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the explorer and finder HTTP API.

The listen address comes from --addr, EXPLOREKIT_SERVER_ADDR, server.addr in
the config file, or the PORT environment variable, in that order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if port := os.Getenv("PORT"); port != "" && !cmd.Flags().Changed("addr") && !viper.InConfig("server.addr") && os.Getenv("EXPLOREKIT_SERVER_ADDR") == "" {
			cfg.Server.Addr = ":" + port
		}

		svc, err := newFinderService(cfg, logger)
		if err != nil {
			return err
		}
		store := session.NewStore(cfg.Server.SessionTTL, cfg.Finder.DefaultViewRadius)

		fmt.Printf("explorekit running on %s\n", cfg.Server.Addr)
		return server.New(cfg, store, svc, logger).Run()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :9595)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

// newFinderService wires the geocoder and the configured POI provider, both
// behind a TTL cache.
func newFinderService(cfg config.Config, logger *slog.Logger) (*finder.Service, error) {
	fc := cfg.Finder

	var geocoder geo.Geocoder = geo.NewNominatim(fc.NominatimURL, fc.UserAgent, fc.Timeout, fc.GeocodeRPS)

	var provider geo.Provider
	switch strings.ToLower(fc.Provider) {
	case config.ProviderElastic:
		es, err := geo.NewElastic(fc.ElasticURL, fc.ElasticIndex, fc.MaxResults)
		if err != nil {
			return nil, fmt.Errorf("connect elasticsearch: %w", err)
		}
		provider = es
	default:
		provider = geo.NewOverpass(fc.OverpassURL, fc.UserAgent, fc.Amenity, fc.MaxResults, fc.Timeout)
	}

	if fc.CacheTTL > 0 {
		geocoder = geo.NewCachedGeocoder(geocoder, fc.CacheTTL)
		provider = geo.NewCachedProvider(provider, fc.CacheTTL)
	}

	logger.Debug("finder configured", "provider", fc.Provider, "search_radius_m", fc.SearchRadiusMeters, "cache_ttl", fc.CacheTTL)
	return finder.NewService(geocoder, provider, finder.Options{
		SearchRadiusMeters: fc.SearchRadiusMeters,
		RankingCeilingKm:   fc.RankingCeilingKm,
	}, logger), nil
}
