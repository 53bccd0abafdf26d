package api_keys

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	users_models "github.com/git-webzoom/assistente-x-hub/internal/features/users/models"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// KeyCache caches verification results keyed by key hash. Satisfied by
// cache_utils.CacheUtil[CachedApiKey] in production and by an in-memory map
// in tests.
type KeyCache interface {
	Get(keyHash string) *CachedApiKey
	Set(keyHash string, key *CachedApiKey)
	Invalidate(keyHash string)
}

// ApiKeyService issues, manages and verifies tenant API keys.
//
// Keys are stored as deterministic SHA-256 hashes and verified via an O(1)
// equality lookup on the hash. Compared with a salted adaptive hash (bcrypt
// scanned against every active key) this gives constant-cost verification on
// the request path at the price of weaker resistance to offline brute force
// should the hash table leak; with 256 bits of key entropy that trade is
// acceptable here.
type ApiKeyService struct {
	apiKeyRepository *ApiKeyRepository
	keyCache         KeyCache
	logger           *slog.Logger

	singleflight singleflight.Group // Prevents thundering herd on DB calls
}

const (
	KeyPrefix = "sk_live_"
	KeyBytes  = 32

	displayPrefixLength = 15

	DefaultRateLimitPerMinute = 60
)

func NewApiKeyService(
	apiKeyRepository *ApiKeyRepository,
	keyCache KeyCache,
	logger *slog.Logger,
) *ApiKeyService {
	return &ApiKeyService{
		apiKeyRepository: apiKeyRepository,
		keyCache:         keyCache,
		logger:           logger,
	}
}

// CreateApiKey issues a new key for the creator's tenant. The plaintext key
// is present only on the returned record; every later read exposes just the
// display prefix.
func (s *ApiKeyService) CreateApiKey(
	request *CreateApiKeyRequestDTO,
	creator *users_models.User,
) (*ApiKey, error) {
	fullKey, keyPrefix, keyHash, err := s.generateSecureKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	rateLimit := DefaultRateLimitPerMinute
	if request.RateLimitPerMinute != nil {
		rateLimit = *request.RateLimitPerMinute
	}

	apiKey := &ApiKey{
		ID:                 uuid.New(),
		TenantID:           creator.TenantID,
		Name:               request.Name,
		KeyHash:            keyHash,
		KeyPrefix:          keyPrefix,
		IsActive:           true,
		RateLimitPerMinute: rateLimit,
		ExpiresAt:          request.ExpiresAt,
	}

	if err := s.apiKeyRepository.CreateApiKey(apiKey); err != nil {
		return nil, fmt.Errorf("failed to create API key: %w", err)
	}

	// Pre-warm cache with the new key for immediate availability
	s.keyCache.Set(keyHash, s.toCached(apiKey))

	// The full key is returned exactly once
	apiKey.Key = fullKey

	return apiKey, nil
}

func (s *ApiKeyService) GetTenantApiKeys(user *users_models.User) (*GetApiKeysResponseDTO, error) {
	apiKeys, err := s.apiKeyRepository.GetApiKeysByTenantID(user.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	return &GetApiKeysResponseDTO{ApiKeys: apiKeys}, nil
}

func (s *ApiKeyService) UpdateApiKey(
	apiKeyID uuid.UUID,
	request *UpdateApiKeyRequestDTO,
	updater *users_models.User,
) (*ApiKey, error) {
	apiKey, err := s.getTenantOwnedKey(apiKeyID, updater)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		apiKey.Name = *request.Name
	}
	if request.IsActive != nil {
		apiKey.IsActive = *request.IsActive
	}
	if request.RateLimitPerMinute != nil {
		apiKey.RateLimitPerMinute = *request.RateLimitPerMinute
	}
	if request.ExpiresAt != nil {
		apiKey.ExpiresAt = request.ExpiresAt
	}

	if err := s.apiKeyRepository.UpdateApiKey(apiKey); err != nil {
		return nil, fmt.Errorf("failed to update API key: %w", err)
	}

	s.keyCache.Invalidate(apiKey.KeyHash)

	return apiKey, nil
}

func (s *ApiKeyService) DeleteApiKey(apiKeyID uuid.UUID, deleter *users_models.User) error {
	apiKey, err := s.getTenantOwnedKey(apiKeyID, deleter)
	if err != nil {
		return err
	}

	if err := s.apiKeyRepository.DeleteApiKey(apiKeyID); err != nil {
		return fmt.Errorf("failed to delete API key: %w", err)
	}

	s.keyCache.Invalidate(apiKey.KeyHash)

	return nil
}

// VerifyKey resolves a presented plaintext key to its cached record, or nil
// when the key is unknown, inactive or expired. All failure modes are
// indistinguishable to the caller.
func (s *ApiKeyService) VerifyKey(presentedKey string) *CachedApiKey {
	if !strings.HasPrefix(presentedKey, KeyPrefix) {
		return nil
	}

	keyHash := s.hashKey(presentedKey)

	if cached := s.keyCache.Get(keyHash); cached != nil {
		return s.checkUsable(cached)
	}

	result, err, _ := s.singleflight.Do(keyHash, func() (any, error) {
		return s.apiKeyRepository.GetApiKeyByKeyHash(keyHash)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Cache the miss to prevent future DB hits
			s.keyCache.Set(keyHash, &CachedApiKey{NotFound: true})
		} else {
			s.logger.Error("api key lookup failed", slog.String("error", err.Error()))
		}
		return nil
	}

	apiKey, ok := result.(*ApiKey)
	if !ok {
		return nil
	}

	cached := s.toCached(apiKey)
	s.keyCache.Set(keyHash, cached)

	return s.checkUsable(cached)
}

// TouchLastUsed records a successful use. Callers invoke it off the request
// path; a failed update never fails the request.
func (s *ApiKeyService) TouchLastUsed(apiKeyID uuid.UUID) {
	if err := s.apiKeyRepository.TouchLastUsed(apiKeyID, time.Now().UTC()); err != nil {
		s.logger.Error("failed to update api key last_used_at",
			slog.String("apiKeyId", apiKeyID.String()),
			slog.String("error", err.Error()))
	}
}

func (s *ApiKeyService) getTenantOwnedKey(
	apiKeyID uuid.UUID,
	user *users_models.User,
) (*ApiKey, error) {
	apiKey, err := s.apiKeyRepository.GetApiKeyByID(apiKeyID)
	if err != nil {
		return nil, errors.New("API key not found")
	}

	if apiKey.TenantID != user.TenantID {
		return nil, errors.New("API key not found")
	}

	return apiKey, nil
}

func (s *ApiKeyService) checkUsable(cached *CachedApiKey) *CachedApiKey {
	if cached.NotFound || !cached.IsActive {
		return nil
	}

	if cached.ExpiresAt != nil && cached.ExpiresAt.Before(time.Now().UTC()) {
		return nil
	}

	return cached
}

func (s *ApiKeyService) toCached(apiKey *ApiKey) *CachedApiKey {
	return &CachedApiKey{
		ID:                 apiKey.ID,
		TenantID:           apiKey.TenantID,
		IsActive:           apiKey.IsActive,
		RateLimitPerMinute: apiKey.RateLimitPerMinute,
		ExpiresAt:          apiKey.ExpiresAt,
	}
}

func (s *ApiKeyService) generateSecureKey() (fullKey, prefix, hash string, err error) {
	keyBytes := make([]byte, KeyBytes)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", "", "", err
	}

	fullKey = KeyPrefix + hex.EncodeToString(keyBytes)
	prefix = fullKey[:displayPrefixLength] + "..."
	hash = s.hashKey(fullKey)

	return fullKey, prefix, hash, nil
}

func (s *ApiKeyService) hashKey(key string) string {
	hasher := sha256.New()
	hasher.Write([]byte(key))
	return hex.EncodeToString(hasher.Sum(nil))
}
