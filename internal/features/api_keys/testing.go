package api_keys

import (
	"sync"
	"testing"

	users_models "github.com/git-webzoom/assistente-x-hub/internal/features/users/models"
	"github.com/git-webzoom/assistente-x-hub/internal/util/logger"

	"github.com/stretchr/testify/require"
)

// MemoryKeyCache is a map-backed KeyCache for tests, so no Valkey instance
// is needed to exercise verification paths.
type MemoryKeyCache struct {
	mu      sync.Mutex
	entries map[string]*CachedApiKey
}

func NewMemoryKeyCache() *MemoryKeyCache {
	return &MemoryKeyCache{entries: make(map[string]*CachedApiKey)}
}

func (c *MemoryKeyCache) Get(keyHash string) *CachedApiKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[keyHash]
}

func (c *MemoryKeyCache) Set(keyHash string, key *CachedApiKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[keyHash] = key
}

func (c *MemoryKeyCache) Invalidate(keyHash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, keyHash)
}

// NewTestApiKeyService builds a service wired to the test database and an
// in-memory cache.
func NewTestApiKeyService() *ApiKeyService {
	return NewApiKeyService(&ApiKeyRepository{}, NewMemoryKeyCache(), logger.GetLogger())
}

// CreateTestApiKey issues a key for the given tenant owner through the real
// service and returns the record with its plaintext key populated.
func CreateTestApiKey(t *testing.T, service *ApiKeyService, owner *users_models.User, name string) *ApiKey {
	t.Helper()

	apiKey, err := service.CreateApiKey(&CreateApiKeyRequestDTO{Name: name}, owner)
	require.NoError(t, err)
	require.NotEmpty(t, apiKey.Key)

	return apiKey
}
