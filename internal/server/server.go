package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"miniwx/internal/atis"
	"miniwx/internal/config"
	"miniwx/internal/logger"
	"miniwx/internal/profiles"
	"miniwx/internal/storage"
	"miniwx/internal/updates"
	"miniwx/internal/vatsim"
	"miniwx/internal/weather"
)

// AtisProvider resolves the current ATIS for an airport
type AtisProvider interface {
	CurrentATIS(ctx context.Context, icao string) (atis.ResolvedATIS, error)
}

// WeatherClient fetches METARs and station records
type WeatherClient interface {
	FetchMETAR(ctx context.Context, id string) (*weather.METAR, error)
	LookupStation(ctx context.Context, id string) (*weather.Station, error)
}

// UpdateChecker checks for a newer published release
type UpdateChecker interface {
	Check(ctx context.Context, currentVersion string) (*updates.Result, error)
}

// Server wires the API handlers to their backing components
type Server struct {
	Config   *config.Config
	Atis     AtisProvider
	Profiles *profiles.Store
	Updates  UpdateChecker

	// The AWC client downloads its station index lazily; construction
	// happens on first use and the outcome sticks for the process
	// lifetime, mirroring the datafeed client.
	weatherOnce    sync.Once
	weatherClient  WeatherClient
	weatherErr     error
	connectWeather func() (WeatherClient, error)

	storage storage.StorageClient
	log     *logger.Logger
}

// NewServer creates a server instance from configuration
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	deploymentMode := storage.DeploymentLocal
	if cfg.GCSBucket != "" {
		deploymentMode = storage.DeploymentGCS
	}

	storageClient, err := storage.NewStorageClient(ctx, deploymentMode, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize profile storage: %w", err)
	}

	return &Server{
		Config:   cfg,
		Atis:     atis.NewCache(datafeedConnect(cfg)),
		Profiles: profiles.NewStore(storageClient),
		Updates:  updates.NewChecker(cfg.UpdateFeedURL),
		connectWeather: func() (WeatherClient, error) {
			return weather.NewClient(cfg.AWCBaseURL)
		},
		storage: storageClient,
		log:     logger.GetGlobalLogger().WithComponent("server"),
	}, nil
}

// datafeedConnect adapts the vatsim client constructor to the cache's
// connect contract
func datafeedConnect(cfg *config.Config) atis.ConnectFunc {
	return func(ctx context.Context) (atis.Fetcher, error) {
		return vatsim.NewClient(ctx, cfg.VatsimStatusURL)
	}
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}

// weather returns the AWC client, constructing it on first use; a
// failed construction is never retried
func (s *Server) weather() (WeatherClient, error) {
	s.weatherOnce.Do(func() {
		s.weatherClient, s.weatherErr = s.connectWeather()
		if s.weatherErr != nil {
			s.log.Error("AWC client initialization failed", s.weatherErr)
		}
	})

	if s.weatherErr != nil {
		return nil, fmt.Errorf("AWC API client not initialized: %w", s.weatherErr)
	}
	return s.weatherClient, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/api/metar", s.HandleMetar)
	mux.HandleFunc("/api/station", s.HandleStation)
	mux.HandleFunc("/api/atis", s.HandleAtis)
	mux.HandleFunc("/api/profiles", s.HandleProfiles)
	mux.HandleFunc("/api/profiles/", s.HandleProfileByName)
	mux.HandleFunc("/api/settings", s.HandleSettings)
	mux.HandleFunc("/api/settings/initial", s.HandleSettingsInitial)
	mux.HandleFunc("/api/update-check", s.HandleUpdateCheck)

	return mux
}
