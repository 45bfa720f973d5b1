package di

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-book-inventory/cache"
	"github.com/goliatone/go-book-inventory/inventory"
)

func TestNewContainer(t *testing.T) {
	config := cache.Config{
		Capacity:           1000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
		EarlyRefresh: &cache.EarlyRefreshConfig{
			MinAsyncRefreshTime: 10 * time.Second,
			MaxAsyncRefreshTime: 20 * time.Second,
			SyncRefreshTime:     30 * time.Second,
			RetryBaseDelay:      100 * time.Millisecond,
		},
		MissingRecordStorage: true,
		EvictionInterval:     0,
	}

	container, err := NewContainer(config)
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}

	if container == nil {
		t.Fatal("NewContainer() returned nil container")
	}

	if container.CacheService() == nil {
		t.Error("Container should have a non-nil cache service")
	}

	if container.KeySerializer() == nil {
		t.Error("Container should have a non-nil key serializer")
	}

	storedConfig := container.Config()
	if storedConfig.Capacity != config.Capacity {
		t.Errorf("Expected capacity %d, got %d", config.Capacity, storedConfig.Capacity)
	}

	if storedConfig.TTL != config.TTL {
		t.Errorf("Expected TTL %v, got %v", config.TTL, storedConfig.TTL)
	}
}

func TestNewContainerWithDefaults(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	if container == nil {
		t.Fatal("NewContainerWithDefaults() returned nil container")
	}

	config := container.Config()
	defaultConfig := cache.DefaultConfig()

	if config.Capacity != defaultConfig.Capacity {
		t.Errorf("Expected default capacity %d, got %d", defaultConfig.Capacity, config.Capacity)
	}

	if config.TTL != defaultConfig.TTL {
		t.Errorf("Expected default TTL %v, got %v", defaultConfig.TTL, config.TTL)
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	invalidConfig := cache.Config{
		Capacity:           0, // Invalid: must be > 0
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}

	_, err := NewContainer(invalidConfig)
	if err == nil {
		t.Error("NewContainer() should fail with invalid config")
	}
}

func TestContainerSingletonBehavior(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	cacheService1 := container.CacheService()
	cacheService2 := container.CacheService()

	if cacheService1 != cacheService2 {
		t.Error("CacheService() should return the same instance (singleton behavior)")
	}

	keySerializer1 := container.KeySerializer()
	keySerializer2 := container.KeySerializer()

	if keySerializer1 != keySerializer2 {
		t.Error("KeySerializer() should return the same instance (singleton behavior)")
	}
}

func TestKeySerializerIntegration(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	keySerializer := container.KeySerializer()

	testCases := []struct {
		name      string
		namespace string
		args      []any
		expected  string
	}{
		{
			name:      "no args",
			namespace: "booksAll",
			args:      []any{},
			expected:  "booksAll",
		},
		{
			name:      "single id",
			namespace: "books",
			args:      []any{int64(123)},
			expected:  "books::123",
		},
		{
			name:      "search pair",
			namespace: "booksSearch",
			args:      []any{"clean code", "martin"},
			expected:  "booksSearch::clean code::martin",
		},
		{
			name:      "nil arg",
			namespace: "booksSearch",
			args:      []any{nil, nil},
			expected:  "booksSearch::nil::nil",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := keySerializer.SerializeKey(tc.namespace, tc.args...)
			if result != tc.expected {
				t.Errorf("Expected key %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestCacheServiceIntegration(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	cacheService := container.CacheService()
	ctx := context.Background()

	key := "test-key"
	expectedValue := "test-value"

	fetchFn := func(ctx context.Context) (any, error) {
		return expectedValue, nil
	}

	result, err := cacheService.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		t.Fatalf("GetOrFetch() failed: %v", err)
	}

	if result != expectedValue {
		t.Errorf("Expected value %q, got %q", expectedValue, result)
	}

	if err := cacheService.Delete(ctx, key); err != nil {
		t.Errorf("Delete() failed: %v", err)
	}
}

// stubRepository satisfies inventory.Repository with empty results so the
// container wiring can be exercised without a database.
type stubRepository struct{}

func (stubRepository) Save(ctx context.Context, book *inventory.Book) (*inventory.Book, error) {
	return book, nil
}

func (stubRepository) FindByID(ctx context.Context, id int64) (*inventory.Book, error) {
	return nil, inventory.ErrBookNotFound
}

func (stubRepository) FindAll(ctx context.Context) ([]*inventory.Book, error) {
	return nil, nil
}

func (stubRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

func (stubRepository) DeleteByID(ctx context.Context, id int64) error {
	return nil
}

func (stubRepository) FindByTitle(ctx context.Context, title string) ([]*inventory.Book, error) {
	return nil, nil
}

func (stubRepository) FindByAuthor(ctx context.Context, author string) ([]*inventory.Book, error) {
	return nil, nil
}

func (stubRepository) FindByTitleAndAuthor(ctx context.Context, title, author string) ([]*inventory.Book, error) {
	return nil, nil
}

func TestNewBookService(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	service := NewBookService(container, stubRepository{})
	if service == nil {
		t.Fatal("NewBookService() returned nil service")
	}

	// The service should be wired to the container's cache and serializer.
	_, err = service.GetBookByID(context.Background(), 999)
	if !errors.Is(err, inventory.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound through the wired stack, got %v", err)
	}
}
