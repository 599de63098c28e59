package vatsim

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"

	"miniwx/internal/logger"
)

// Client fetches snapshots of the VATSIM v3 datafeed. Construction
// resolves the datafeed URL from the VATSIM status endpoint, so a
// Client that was built successfully is always ready to fetch.
type Client struct {
	client  *resty.Client
	dataURL string
	log     *logger.Logger
}

// NewClient creates a datafeed client, resolving the v3 data URL from
// the status endpoint. Fails when the status document cannot be fetched
// or lists no v3 URLs.
func NewClient(ctx context.Context, statusURL string) (*Client, error) {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(statusURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch VATSIM status document: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("VATSIM status endpoint returned status %d", resp.StatusCode())
	}

	var st status
	if err := json.Unmarshal(resp.Body(), &st); err != nil {
		return nil, fmt.Errorf("failed to parse VATSIM status document: %w", err)
	}
	if len(st.Data.V3) == 0 {
		return nil, fmt.Errorf("VATSIM status document lists no v3 datafeed URLs")
	}

	// The feed is mirrored; spread load across the published URLs
	dataURL := st.Data.V3[rand.Intn(len(st.Data.V3))]

	return &Client{
		client:  client,
		dataURL: dataURL,
		log:     logger.GetGlobalLogger().WithComponent("vatsim"),
	}, nil
}

// FetchDatafeed fetches the current datafeed snapshot
func (c *Client) FetchDatafeed(ctx context.Context) (*Datafeed, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.dataURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch VATSIM datafeed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("VATSIM datafeed returned status %d", resp.StatusCode())
	}

	var feed Datafeed
	if err := json.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("failed to parse VATSIM datafeed: %w", err)
	}

	c.log.Debug("Fetched datafeed snapshot", map[string]interface{}{
		"update":      feed.General.Update,
		"atis_count":  len(feed.Atis),
		"controllers": len(feed.Controllers),
	})

	return &feed, nil
}
