package users_services_test

import (
	"testing"

	users_dto "github.com/git-webzoom/assistente-x-hub/internal/features/users/dto"
	users_models "github.com/git-webzoom/assistente-x-hub/internal/features/users/models"
	users_services "github.com/git-webzoom/assistente-x-hub/internal/features/users/services"
	users_testing "github.com/git-webzoom/assistente-x-hub/internal/features/users/testing"
	test_utils "github.com/git-webzoom/assistente-x-hub/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUsersTestDb(t *testing.T) {
	test_utils.CreateTestDb(t,
		&users_models.Tenant{},
		&users_models.User{},
		&users_models.SecretKey{},
	)
}

func Test_SignUp_WhenNewEmail_CreatesTenantAndUser(t *testing.T) {
	createUsersTestDb(t)

	user := users_testing.CreateTestUser(t)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, uuid.Nil, user.TenantID)
	assert.True(t, user.IsActiveUser())
	assert.NotEmpty(t, user.Token)
}

func Test_SignUp_WhenEmailAlreadyUsed_ReturnsError(t *testing.T) {
	createUsersTestDb(t)
	service := users_services.GetUserService()

	request := &users_dto.SignUpRequestDTO{
		Email:      "dup@example.com",
		Password:   "test-password-123",
		TenantName: "Tenant A",
	}

	require.NoError(t, service.SignUp(request))

	err := service.SignUp(request)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func Test_SignIn_WhenWrongPassword_ReturnsError(t *testing.T) {
	createUsersTestDb(t)
	service := users_services.GetUserService()

	require.NoError(t, service.SignUp(&users_dto.SignUpRequestDTO{
		Email:      "ana@example.com",
		Password:   "correct-password",
		TenantName: "Tenant",
	}))

	_, err := service.SignIn(&users_dto.SignInRequestDTO{
		Email:    "ana@example.com",
		Password: "wrong-password",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect")
}

func Test_GetUserFromToken_WhenTokenValid_ResolvesUser(t *testing.T) {
	createUsersTestDb(t)
	service := users_services.GetUserService()

	user := users_testing.CreateTestUser(t)

	resolved, err := service.GetUserFromToken(user.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.TenantID, resolved.TenantID)
}

func Test_GetUserFromToken_WhenTokenGarbage_ReturnsError(t *testing.T) {
	createUsersTestDb(t)
	service := users_services.GetUserService()

	_, err := service.GetUserFromToken("not-a-jwt")

	assert.Error(t, err)
}
