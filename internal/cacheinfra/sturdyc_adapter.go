// Package cacheinfra implements the cache.CacheService contract on top of
// sturdyc. It adds the two operations the inventory coherence protocol needs
// beyond plain read-through: write-through Set and prefix-based namespace
// eviction.
package cacheinfra

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc cache adapter.
type Config struct {
	// Capacity is the maximum number of entries the cache can store.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Must be greater than 0.
	NumShards int

	// TTL is the default time-to-live for cached entries.
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage is what share of entries to evict when the cache
	// reaches capacity. Must be between 1 and 100.
	EvictionPercentage int

	// EarlyRefresh configures stampede-protecting refreshes of hot entries
	// before they expire. Nil disables early refresh.
	EarlyRefresh *EarlyRefreshConfig

	// MissingRecordStorage makes the cache remember keys that returned no
	// results, so repeated lookups of absent records skip the store.
	MissingRecordStorage bool

	// EvictionInterval sets how often the cache checks for expired entries.
	// Zero uses the sturdyc default.
	EvictionInterval time.Duration
}

// EarlyRefreshConfig mirrors sturdyc.WithEarlyRefreshes.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration
	MaxAsyncRefreshTime time.Duration
	SyncRefreshTime     time.Duration
	RetryBaseDelay      time.Duration
}

// DefaultConfig returns a Config with defaults suited to a low-contention
// catalog workload.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
		EarlyRefresh: &EarlyRefreshConfig{
			MinAsyncRefreshTime: 10 * time.Second,
			MaxAsyncRefreshTime: 20 * time.Second,
			SyncRefreshTime:     30 * time.Second,
			RetryBaseDelay:      100 * time.Millisecond,
		},
		MissingRecordStorage: true,
		EvictionInterval:     0,
	}
}

// ToSturdycOptions maps the optional parts of the Config to sturdyc options.
// Capacity, NumShards, TTL, and EvictionPercentage go straight to
// sturdyc.New and are not included here.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EarlyRefresh != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			c.EarlyRefresh.MinAsyncRefreshTime,
			c.EarlyRefresh.MaxAsyncRefreshTime,
			c.EarlyRefresh.SyncRefreshTime,
			c.EarlyRefresh.RetryBaseDelay,
		))
	}

	if c.MissingRecordStorage {
		options = append(options, sturdyc.WithMissingRecordStorage())
	}

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	if er := c.EarlyRefresh; er != nil {
		for field, d := range map[string]time.Duration{
			"EarlyRefresh.MinAsyncRefreshTime": er.MinAsyncRefreshTime,
			"EarlyRefresh.MaxAsyncRefreshTime": er.MaxAsyncRefreshTime,
			"EarlyRefresh.SyncRefreshTime":     er.SyncRefreshTime,
			"EarlyRefresh.RetryBaseDelay":      er.RetryBaseDelay,
		} {
			if d < 0 {
				return &ConfigError{Field: field, Message: "must be non-negative"}
			}
		}
	}

	return nil
}

// ConfigError represents a configuration or usage error in this package.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// sturdycService wraps a sturdyc client providing caching behaviour.
type sturdycService struct {
	client *sturdyc.Client[any]
}

// NewSturdycService validates the configuration and initializes a sturdyc
// client with the provided settings.
func NewSturdycService(cfg Config) (*sturdycService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &sturdycService{client: client}, nil
}

// GetOrFetch implements cache.CacheService.GetOrFetch. On a miss it executes
// fetchFn, stores the fresh value under key, and returns it.
//
// fetchFn must have the shape func(context.Context) (T, error) for some T;
// the generic wrapper in the cache package guarantees this for normal usage.
// A malformed fetchFn fails with a ConfigError before the cache is consulted,
// so the failure mode is the same on hits and misses.
func (s *sturdycService) GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error) {
	erased, err := eraseFetchFn(fetchFn)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetOrFetch(ctx, key, erased)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// errResult stands in for the fetch result when the fetch failed. sturdyc
// asserts the response type before it looks at the error, and an untyped nil
// fails that assertion even against any, swapping the fetch error for
// sturdyc's own invalid-response error. Any non-nil value keeps it intact.
type errResult struct{}

// eraseFetchFn validates fetchFn's shape and wraps it so sturdyc can store
// its result as any, whatever concrete type it returns.
func eraseFetchFn(fetchFn any) (func(context.Context) (any, error), error) {
	// Direct assertion covers the already-erased case.
	if fn, ok := fetchFn.(func(context.Context) (any, error)); ok {
		return func(ctx context.Context) (any, error) {
			result, err := fn(ctx)
			if err != nil {
				return errResult{}, err
			}
			return result, nil
		}, nil
	}

	fv := reflect.ValueOf(fetchFn)
	if fv.Kind() != reflect.Func || fv.Type().NumIn() != 1 || fv.Type().NumOut() != 2 {
		return nil, &ConfigError{Field: "fetchFn", Message: "must have signature func(context.Context) (T, error)"}
	}

	return func(ctx context.Context) (any, error) {
		results := fv.Call([]reflect.Value{reflect.ValueOf(ctx)})

		if ev := results[1]; ev.IsValid() && !ev.IsNil() {
			return errResult{}, ev.Interface().(error)
		}

		var result any
		if results[0].IsValid() && results[0].CanInterface() {
			result = results[0].Interface()
		}
		return result, nil
	}, nil
}

// Set implements cache.CacheService.Set. It writes the value through to the
// cache so the next read of key is served without touching the store.
func (s *sturdycService) Set(ctx context.Context, key string, value any) error {
	s.client.Set(key, value)
	return nil
}

// Delete implements cache.CacheService.Delete for a single key.
func (s *sturdycService) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// DeleteByPrefix implements cache.CacheService.DeleteByPrefix. It removes
// every entry whose key starts with prefix, which is how a whole cache
// namespace is evicted after a write.
func (s *sturdycService) DeleteByPrefix(ctx context.Context, prefix string) error {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
	return nil
}
