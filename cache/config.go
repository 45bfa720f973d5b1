package cache

import (
	"time"

	"github.com/goliatone/go-book-inventory/internal/cacheinfra"
)

// Config sizes and tunes the cache shared by every inventory namespace.
// The zero value does not validate; start from DefaultConfig and override.
type Config struct {
	// Capacity caps the number of entries across all namespaces combined.
	Capacity int

	// NumShards spreads entries over independently locked shards for
	// concurrent access.
	NumShards int

	// TTL bounds how long an entry the invalidation protocol never touches
	// can serve stale data.
	TTL time.Duration

	// EvictionPercentage is the share of entries dropped when the cache
	// fills, between 1 and 100.
	EvictionPercentage int

	// EarlyRefresh re-fetches hot entries before they expire, with stampede
	// protection. Nil leaves it off.
	EarlyRefresh *EarlyRefreshConfig

	// MissingRecordStorage remembers lookups that found nothing, so repeated
	// reads of an absent book skip the record store.
	MissingRecordStorage bool

	// EvictionInterval is how often expired entries are swept. Zero keeps
	// the backend default.
	EvictionInterval time.Duration
}

// EarlyRefreshConfig carries the refresh windows for hot entries.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration
	MaxAsyncRefreshTime time.Duration
	SyncRefreshTime     time.Duration
	RetryBaseDelay      time.Duration
}

// DefaultConfig returns the backend's defaults, sized for a catalog workload.
func DefaultConfig() Config {
	return fromInternal(cacheinfra.DefaultConfig())
}

// Validate reports the first invalid field, if any.
func (c Config) Validate() error {
	return c.internal().Validate()
}

// NewCacheService builds the sturdyc-backed CacheService from the
// configuration. The configuration is validated first.
func NewCacheService(cfg Config) (CacheService, error) {
	return cacheinfra.NewSturdycService(cfg.internal())
}

func (c Config) internal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:             c.Capacity,
		NumShards:            c.NumShards,
		TTL:                  c.TTL,
		EvictionPercentage:   c.EvictionPercentage,
		EarlyRefresh:         c.EarlyRefresh.internal(),
		MissingRecordStorage: c.MissingRecordStorage,
		EvictionInterval:     c.EvictionInterval,
	}
}

func (e *EarlyRefreshConfig) internal() *cacheinfra.EarlyRefreshConfig {
	if e == nil {
		return nil
	}
	return &cacheinfra.EarlyRefreshConfig{
		MinAsyncRefreshTime: e.MinAsyncRefreshTime,
		MaxAsyncRefreshTime: e.MaxAsyncRefreshTime,
		SyncRefreshTime:     e.SyncRefreshTime,
		RetryBaseDelay:      e.RetryBaseDelay,
	}
}

func fromInternal(cfg cacheinfra.Config) Config {
	out := Config{
		Capacity:             cfg.Capacity,
		NumShards:            cfg.NumShards,
		TTL:                  cfg.TTL,
		EvictionPercentage:   cfg.EvictionPercentage,
		MissingRecordStorage: cfg.MissingRecordStorage,
		EvictionInterval:     cfg.EvictionInterval,
	}
	if er := cfg.EarlyRefresh; er != nil {
		out.EarlyRefresh = &EarlyRefreshConfig{
			MinAsyncRefreshTime: er.MinAsyncRefreshTime,
			MaxAsyncRefreshTime: er.MaxAsyncRefreshTime,
			SyncRefreshTime:     er.SyncRefreshTime,
			RetryBaseDelay:      er.RetryBaseDelay,
		}
	}
	return out
}
