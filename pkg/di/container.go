// Package di wires the cache service, key serializer, and inventory service
// together so applications construct the stack in one place.
package di

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-book-inventory/cache"
	"github.com/goliatone/go-book-inventory/inventory"
)

// Container manages the singleton cache service and key serializer shared by
// every service built from it.
type Container struct {
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	config        cache.Config
}

// NewContainer creates a container from the given cache configuration.
func NewContainer(config cache.Config) (*Container, error) {
	cacheService, err := cache.NewCacheService(config)
	if err != nil {
		return nil, err
	}

	return &Container{
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
		config:        config,
	}, nil
}

// NewContainerWithDefaults creates a container using the default cache
// configuration.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cache.DefaultConfig())
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewBookService builds an inventory service on top of the given record
// store, sharing the container's cache and key serializer.
func NewBookService(c *Container, repo inventory.Repository, opts ...inventory.Option) *inventory.Service {
	return inventory.NewService(repo, c.cacheService, c.keySerializer, opts...)
}

// NewBookServiceWithLogger is a convenience for the common case of attaching
// a logger.
func NewBookServiceWithLogger(c *Container, repo inventory.Repository, log zerolog.Logger) *inventory.Service {
	return NewBookService(c, repo, inventory.WithLogger(log))
}
