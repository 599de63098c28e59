// Package updates checks the project's GitHub releases feed for a
// version newer than the one currently running.
package updates

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"miniwx/internal/logger"
)

// Release tags look like "release-v1.4.0"
var tagVersionPattern = regexp.MustCompile(`release-v(.+)$`)

// Result describes the outcome of an update check
type Result struct {
	UpdateAvailable bool   `json:"updateAvailable"`
	CurrentVersion  string `json:"currentVersion"`
	LatestVersion   string `json:"latestVersion,omitempty"`
	ReleaseURL      string `json:"releaseUrl,omitempty"`
}

// Checker fetches and parses the releases Atom feed
type Checker struct {
	client  *resty.Client
	parser  *gofeed.Parser
	feedURL string
	log     *logger.Logger
}

// NewChecker creates a checker for the given releases feed URL
func NewChecker(feedURL string) *Checker {
	client := resty.New()
	client.SetTimeout(30 * time.Second)

	return &Checker{
		client:  client,
		parser:  gofeed.NewParser(),
		feedURL: feedURL,
		log:     logger.GetGlobalLogger().WithComponent("updates"),
	}
}

// Check compares the newest published release against currentVersion
func (c *Checker) Check(ctx context.Context, currentVersion string) (*Result, error) {
	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid running version %q: %w", currentVersion, err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch releases feed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("releases feed returned status %d", resp.StatusCode())
	}

	feed, err := c.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse releases feed: %w", err)
	}

	// Entries are newest first; the first one with a parseable release
	// tag is the latest release
	for _, item := range feed.Items {
		latest, ok := versionFromItem(item)
		if !ok {
			continue
		}

		c.log.Debug("Found latest release", map[string]interface{}{
			"latest":  latest.String(),
			"current": current.String(),
		})

		return &Result{
			UpdateAvailable: latest.GreaterThan(current),
			CurrentVersion:  current.String(),
			LatestVersion:   latest.String(),
			ReleaseURL:      item.Link,
		}, nil
	}

	return nil, fmt.Errorf("no release with a parseable version tag in feed")
}

// versionFromItem extracts the semver from a feed entry's tag, trying
// the entry ID first and falling back to the link
func versionFromItem(item *gofeed.Item) (*semver.Version, bool) {
	for _, candidate := range []string{item.GUID, item.Link} {
		m := tagVersionPattern.FindStringSubmatch(candidate)
		if m == nil {
			continue
		}
		if v, err := semver.NewVersion(m[1]); err == nil {
			return v, true
		}
	}
	return nil, false
}
