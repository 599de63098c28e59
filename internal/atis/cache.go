package atis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"miniwx/internal/logger"
	"miniwx/internal/vatsim"
)

// DefaultTTL bounds how often the datafeed is fetched. The feed itself
// only changes on the order of tens of seconds, so anything fresher is
// wasted request volume against a rate-limited upstream.
const DefaultTTL = 30 * time.Second

// ErrDatafeedUnavailable is returned when no usable snapshot exists,
// either because the fetch failed or the client never initialized.
var ErrDatafeedUnavailable = errors.New("could not retrieve datafeed")

// Fetcher fetches one snapshot of the live datafeed
type Fetcher interface {
	FetchDatafeed(ctx context.Context) (*vatsim.Datafeed, error)
}

// ConnectFunc constructs the datafeed client. It runs at most once per
// process; the outcome, success or failure, is remembered for the
// process lifetime.
type ConnectFunc func(ctx context.Context) (Fetcher, error)

// fetch is one cache entry: the outcome of a single refresh attempt.
// Exactly one exists at a time; it is replaced wholesale, never merged.
// A fetch holding an error still counts as present for freshness, so a
// persistent outage costs one upstream attempt per TTL window.
type fetch struct {
	fetchedAt time.Time
	feed      *vatsim.Datafeed
	err       error
}

// Cache memoizes the most recent datafeed snapshot with a fixed TTL.
// Refresh is strictly request-driven: no background task exists, a
// stale read triggers a synchronous refresh. Concurrent stale readers
// are coalesced onto a single in-flight fetch.
type Cache struct {
	mu    sync.Mutex
	entry *fetch

	connectOnce sync.Once
	connect     ConnectFunc
	client      Fetcher
	connectErr  error

	group singleflight.Group

	ttl time.Duration
	now func() time.Time
	log *logger.Logger
}

// NewCache creates a datafeed cache. The connect function is invoked
// lazily on the first refresh.
func NewCache(connect ConnectFunc) *Cache {
	return &Cache{
		connect: connect,
		ttl:     DefaultTTL,
		now:     time.Now,
		log:     logger.GetGlobalLogger().WithComponent("datafeed"),
	}
}

// CurrentATIS returns the resolved ATIS for an airport, refreshing the
// cached snapshot first when it has gone stale.
func (c *Cache) CurrentATIS(ctx context.Context, icao string) (ResolvedATIS, error) {
	feed, err := c.Snapshot(ctx)
	if err != nil {
		return ResolvedATIS{}, err
	}
	return Resolve(icao, feed), nil
}

// Snapshot returns the cached datafeed, refreshing synchronously when
// stale. A cached fetch error is surfaced to every caller until the TTL
// elapses and a new attempt is made.
func (c *Cache) Snapshot(ctx context.Context) (*vatsim.Datafeed, error) {
	c.mu.Lock()
	if !c.staleLocked() {
		entry := c.entry
		c.mu.Unlock()
		return entry.result()
	}
	c.mu.Unlock()

	// Coalesce concurrent stale readers onto one upstream fetch; the
	// result is installed as the single cache entry, last writer wins.
	v, _, _ := c.group.Do("datafeed", func() (interface{}, error) {
		entry := c.refresh(ctx)
		c.mu.Lock()
		c.entry = entry
		c.mu.Unlock()
		return entry, nil
	})

	return v.(*fetch).result()
}

// IsStale reports whether the next read would trigger a refresh
func (c *Cache) IsStale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.staleLocked()
}

// staleLocked must be called with c.mu held. An entry is stale strictly
// after the TTL: a read at exactly fetchedAt+TTL is still fresh.
func (c *Cache) staleLocked() bool {
	if c.entry == nil {
		return true
	}
	return c.now().Sub(c.entry.fetchedAt) > c.ttl
}

// refresh performs one fetch attempt and wraps whatever it returns,
// value or error, into a new entry stamped with the current wall clock.
func (c *Cache) refresh(ctx context.Context) *fetch {
	client, err := c.initClient(ctx)
	if err != nil {
		// Terminal for the process lifetime, but still cached like any
		// other failed attempt
		return &fetch{fetchedAt: c.now(), err: err}
	}

	feed, err := client.FetchDatafeed(ctx)
	if err != nil {
		c.log.Error("Datafeed refresh failed", err)
	} else {
		c.log.Debug("Datafeed refreshed", map[string]interface{}{
			"atis_count": len(feed.Atis),
		})
	}

	return &fetch{fetchedAt: c.now(), feed: feed, err: err}
}

// initClient runs the connect function exactly once and remembers the
// outcome; a failed construction is never retried.
func (c *Cache) initClient(ctx context.Context) (Fetcher, error) {
	c.connectOnce.Do(func() {
		c.client, c.connectErr = c.connect(ctx)
		if c.connectErr != nil {
			c.log.Error("VATSIM API client initialization failed", c.connectErr)
		}
	})

	if c.connectErr != nil {
		return nil, fmt.Errorf("VATSIM API client not initialized: %w", c.connectErr)
	}
	return c.client, nil
}

func (f *fetch) result() (*vatsim.Datafeed, error) {
	if f.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatafeedUnavailable, f.err)
	}
	return f.feed, nil
}
