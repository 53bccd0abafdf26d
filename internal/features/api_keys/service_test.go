package api_keys

import (
	"strings"
	"testing"
	"time"

	users_models "github.com/git-webzoom/assistente-x-hub/internal/features/users/models"
	test_utils "github.com/git-webzoom/assistente-x-hub/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOwner() *users_models.User {
	return &users_models.User{ID: uuid.New(), TenantID: uuid.New()}
}

func Test_CreateApiKey_WhenCreated_PlaintextIsReturnedExactlyOnce(t *testing.T) {
	test_utils.CreateTestDb(t, &ApiKey{})
	service := NewTestApiKeyService()
	owner := newTestOwner()

	apiKey := CreateTestApiKey(t, service, owner, "integration")

	assert.True(t, strings.HasPrefix(apiKey.Key, KeyPrefix))
	assert.Len(t, apiKey.Key, len(KeyPrefix)+KeyBytes*2)
	assert.Equal(t, apiKey.Key[:displayPrefixLength]+"...", apiKey.KeyPrefix)
	assert.Equal(t, DefaultRateLimitPerMinute, apiKey.RateLimitPerMinute)

	// later reads expose only the display prefix
	response, err := service.GetTenantApiKeys(owner)
	require.NoError(t, err)
	require.Len(t, response.ApiKeys, 1)
	assert.Empty(t, response.ApiKeys[0].Key)
	assert.Equal(t, apiKey.KeyPrefix, response.ApiKeys[0].KeyPrefix)
}

func Test_VerifyKey_WhenKeyJustIssued_RoundTripsToSameTenant(t *testing.T) {
	test_utils.CreateTestDb(t, &ApiKey{})
	service := NewTestApiKeyService()
	owner := newTestOwner()

	apiKey := CreateTestApiKey(t, service, owner, "verify")

	cached := service.VerifyKey(apiKey.Key)
	require.NotNil(t, cached)
	assert.Equal(t, apiKey.ID, cached.ID)
	assert.Equal(t, owner.TenantID, cached.TenantID)
}

func Test_VerifyKey_WhenKeyUnknown_ReturnsNil(t *testing.T) {
	test_utils.CreateTestDb(t, &ApiKey{})
	service := NewTestApiKeyService()

	assert.Nil(t, service.VerifyKey("sk_live_"+strings.Repeat("0", 64)))
	assert.Nil(t, service.VerifyKey("garbage"))

	// second lookup is answered by the negative cache
	assert.Nil(t, service.VerifyKey("sk_live_"+strings.Repeat("0", 64)))
}

func Test_VerifyKey_WhenKeyDeactivated_ReturnsNil(t *testing.T) {
	test_utils.CreateTestDb(t, &ApiKey{})
	service := NewTestApiKeyService()
	owner := newTestOwner()

	apiKey := CreateTestApiKey(t, service, owner, "deactivate")

	isActive := false
	_, err := service.UpdateApiKey(apiKey.ID, &UpdateApiKeyRequestDTO{IsActive: &isActive}, owner)
	require.NoError(t, err)

	assert.Nil(t, service.VerifyKey(apiKey.Key))
}

func Test_VerifyKey_WhenKeyExpired_ReturnsNil(t *testing.T) {
	test_utils.CreateTestDb(t, &ApiKey{})
	service := NewTestApiKeyService()
	owner := newTestOwner()

	apiKey := CreateTestApiKey(t, service, owner, "expiry")

	expiresAt := time.Now().UTC().Add(-time.Minute)
	_, err := service.UpdateApiKey(apiKey.ID, &UpdateApiKeyRequestDTO{ExpiresAt: &expiresAt}, owner)
	require.NoError(t, err)

	assert.Nil(t, service.VerifyKey(apiKey.Key))
}

func Test_VerifyKey_WhenKeyDeleted_ReturnsNil(t *testing.T) {
	test_utils.CreateTestDb(t, &ApiKey{})
	service := NewTestApiKeyService()
	owner := newTestOwner()

	apiKey := CreateTestApiKey(t, service, owner, "delete")

	require.NoError(t, service.DeleteApiKey(apiKey.ID, owner))

	assert.Nil(t, service.VerifyKey(apiKey.Key))
}

func Test_UpdateApiKey_WhenOtherTenant_ReturnsNotFound(t *testing.T) {
	test_utils.CreateTestDb(t, &ApiKey{})
	service := NewTestApiKeyService()

	apiKey := CreateTestApiKey(t, service, newTestOwner(), "owned")

	isActive := false
	_, err := service.UpdateApiKey(apiKey.ID, &UpdateApiKeyRequestDTO{IsActive: &isActive}, newTestOwner())

	require.Error(t, err)
	assert.Equal(t, "API key not found", err.Error())
}

func Test_DeleteApiKey_WhenOtherTenant_ReturnsNotFoundAndKeepsKey(t *testing.T) {
	test_utils.CreateTestDb(t, &ApiKey{})
	service := NewTestApiKeyService()
	owner := newTestOwner()

	apiKey := CreateTestApiKey(t, service, owner, "owned")

	err := service.DeleteApiKey(apiKey.ID, newTestOwner())
	require.Error(t, err)
	assert.Equal(t, "API key not found", err.Error())

	assert.NotNil(t, service.VerifyKey(apiKey.Key))
}

func Test_CreateApiKey_WhenCustomRateLimit_IsKept(t *testing.T) {
	test_utils.CreateTestDb(t, &ApiKey{})
	service := NewTestApiKeyService()
	owner := newTestOwner()

	rateLimit := 600
	apiKey, err := service.CreateApiKey(&CreateApiKeyRequestDTO{
		Name:               "high volume",
		RateLimitPerMinute: &rateLimit,
	}, owner)
	require.NoError(t, err)

	cached := service.VerifyKey(apiKey.Key)
	require.NotNil(t, cached)
	assert.Equal(t, 600, cached.RateLimitPerMinute)
}

func Test_TouchLastUsed_WhenCalled_SetsTimestamp(t *testing.T) {
	test_utils.CreateTestDb(t, &ApiKey{})
	service := NewTestApiKeyService()
	owner := newTestOwner()

	apiKey := CreateTestApiKey(t, service, owner, "touch")
	require.Nil(t, apiKey.LastUsedAt)

	service.TouchLastUsed(apiKey.ID)

	response, err := service.GetTenantApiKeys(owner)
	require.NoError(t, err)
	require.Len(t, response.ApiKeys, 1)
	require.NotNil(t, response.ApiKeys[0].LastUsedAt)
	assert.WithinDuration(t, time.Now().UTC(), *response.ApiKeys[0].LastUsedAt, 5*time.Second)
}
