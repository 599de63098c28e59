// Package weather wraps the aviationweather.gov (AWC) data API: METAR
// reports with derived wind/altimeter values and station lookups.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"miniwx/internal/logger"
)

// Client fetches METARs and station records from the AWC data API.
// Station lookups are cached for the client lifetime; station records
// effectively never change.
type Client struct {
	client  *resty.Client
	baseURL string
	log     *logger.Logger

	mu       sync.Mutex
	stations map[string]Station
}

// NewClient creates an AWC client for the given base URL
// (e.g. https://aviationweather.gov)
func NewClient(baseURL string) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid AWC base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid AWC base URL %q: missing scheme or host", baseURL)
	}

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &Client{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      logger.GetGlobalLogger().WithComponent("weather"),
		stations: make(map[string]Station),
	}, nil
}

// FetchMETAR fetches the most recent METAR for a station
func (c *Client) FetchMETAR(ctx context.Context, id string) (*METAR, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"ids":    id,
			"format": "json",
		}).
		Get(c.baseURL + "/api/data/metar")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch METAR for %s: %w", id, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("AWC METAR API returned status %d", resp.StatusCode())
	}

	var reports []METAR
	if err := json.Unmarshal(resp.Body(), &reports); err != nil {
		return nil, fmt.Errorf("failed to parse METAR response for %s: %w", id, err)
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("no METAR available for %s", id)
	}

	// The API returns the newest report first
	metar := reports[0]
	c.log.Debug("Fetched METAR", map[string]interface{}{
		"id":  id,
		"raw": metar.RawOb,
	})

	return &metar, nil
}

// LookupStation returns the station record for an ICAO/IATA/FAA
// identifier, hitting the API only on the first lookup per identifier.
func (c *Client) LookupStation(ctx context.Context, id string) (*Station, error) {
	c.mu.Lock()
	if station, ok := c.stations[id]; ok {
		c.mu.Unlock()
		return &station, nil
	}
	c.mu.Unlock()

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"ids":    id,
			"format": "json",
		}).
		Get(c.baseURL + "/api/data/stationinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to look up station %s: %w", id, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("AWC station API returned status %d", resp.StatusCode())
	}

	var stations []Station
	if err := json.Unmarshal(resp.Body(), &stations); err != nil {
		return nil, fmt.Errorf("failed to parse station response for %s: %w", id, err)
	}
	if len(stations) == 0 {
		return nil, fmt.Errorf("no station found for %s", id)
	}

	station := stations[0]
	c.mu.Lock()
	c.stations[id] = station
	c.mu.Unlock()

	return &station, nil
}
