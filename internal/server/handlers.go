package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"miniwx/internal/config"
	"miniwx/internal/profiles"
	"miniwx/internal/weather"
)

// MetarResponse is the payload for /api/metar: the raw report plus the
// derived values the frontend renders directly
type MetarResponse struct {
	Metar      *weather.METAR `json:"metar"`
	WindString string         `json:"windString"`
	Altimeter  float64        `json:"altimeter"`
}

// InitialLoadResponse is the payload for /api/settings/initial
type InitialLoadResponse struct {
	Settings profiles.Settings `json:"settings"`
	Profile  *profiles.Profile `json:"profile,omitempty"`
}

// HandleHealth provides the health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleMetar serves the latest METAR with derived wind and altimeter
func (s *Server) HandleMetar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'id' is required")
		return
	}

	client, err := s.weather()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "AWC API client not initialized")
		return
	}

	metar, err := client.FetchMETAR(r.Context(), id)
	if err != nil {
		s.log.Error("METAR fetch failed", err, map[string]interface{}{"id": id})
		writeError(w, http.StatusBadGateway, "Error fetching METARs")
		return
	}

	writeJSON(w, http.StatusOK, MetarResponse{
		Metar:      metar,
		WindString: metar.WindString(),
		Altimeter:  metar.AltimeterInHg(),
	})
}

// HandleStation serves station records for ICAO/IATA/FAA identifiers
func (s *Server) HandleStation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'id' is required")
		return
	}

	client, err := s.weather()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "AWC API client not initialized")
		return
	}

	station, err := client.LookupStation(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Station not found")
		return
	}

	writeJSON(w, http.StatusOK, station)
}

// HandleAtis serves the resolved ATIS letter and broadcast texts for an
// airport, refreshing the datafeed cache when it has gone stale
func (s *Server) HandleAtis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	icao := r.URL.Query().Get("icao")
	if icao == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'icao' is required")
		return
	}

	resolved, err := s.Atis.CurrentATIS(r.Context(), icao)
	if err != nil {
		s.log.Error("ATIS resolution failed", err, map[string]interface{}{"icao": icao})
		writeError(w, http.StatusBadGateway, "Could not retrieve datafeed")
		return
	}

	writeJSON(w, http.StatusOK, resolved)
}

// HandleProfiles lists profiles (GET) or saves one (POST)
func (s *Server) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		names, err := s.Profiles.ListProfiles(r.Context())
		if err != nil {
			s.log.Error("Profile listing failed", err)
			writeError(w, http.StatusInternalServerError, "Could not list profiles")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"profiles": names,
			"count":    len(names),
		})

	case http.MethodPost:
		var profile profiles.Profile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid profile document")
			return
		}
		if err := s.Profiles.SaveProfile(r.Context(), &profile); err != nil {
			s.log.Error("Profile save failed", err, map[string]interface{}{"name": profile.Name})
			writeError(w, http.StatusInternalServerError, "Could not save profile")
			return
		}
		writeJSON(w, http.StatusOK, profile)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleProfileByName loads (GET) or replaces (PUT) a single profile:
// /api/profiles/{name}
func (s *Server) HandleProfileByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/profiles/")
	if name == "" {
		writeError(w, http.StatusBadRequest, "Profile name is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		profile, err := s.Profiles.LoadProfile(r.Context(), name)
		if err != nil {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeJSON(w, http.StatusOK, profile)

	case http.MethodPut:
		var profile profiles.Profile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid profile document")
			return
		}
		// The path, not the body, names the profile
		profile.Name = name
		if err := s.Profiles.SaveProfile(r.Context(), &profile); err != nil {
			s.log.Error("Profile save failed", err, map[string]interface{}{"name": name})
			writeError(w, http.StatusInternalServerError, "Could not save profile")
			return
		}
		writeJSON(w, http.StatusOK, profile)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSettings reads (GET) or replaces (PUT) the settings document
func (s *Server) HandleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.Profiles.LoadSettings(r.Context()))

	case http.MethodPut:
		var settings profiles.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid settings document")
			return
		}
		if err := s.Profiles.SaveSettings(r.Context(), settings); err != nil {
			s.log.Error("Settings save failed", err)
			writeError(w, http.StatusInternalServerError, "Could not save settings")
			return
		}
		writeJSON(w, http.StatusOK, settings)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSettingsInitial serves the startup payload: settings plus the
// most recent profile when the user has that enabled
func (s *Server) HandleSettingsInitial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	settings, profile := s.Profiles.InitialLoad(r.Context())
	writeJSON(w, http.StatusOK, InitialLoadResponse{
		Settings: settings,
		Profile:  profile,
	})
}

// HandleUpdateCheck compares the running version against the newest
// published release
func (s *Server) HandleUpdateCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := s.Updates.Check(r.Context(), config.GetVersion())
	if err != nil {
		s.log.Error("Update check failed", err)
		writeError(w, http.StatusBadGateway, "Could not fetch latest release")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
