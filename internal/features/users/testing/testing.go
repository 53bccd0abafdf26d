package users_testing

import (
	"fmt"
	"testing"

	users_dto "github.com/git-webzoom/assistente-x-hub/internal/features/users/dto"
	users_models "github.com/git-webzoom/assistente-x-hub/internal/features/users/models"
	users_services "github.com/git-webzoom/assistente-x-hub/internal/features/users/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type TestUser struct {
	*users_models.User
	Token string
}

// CreateTestUser provisions a tenant plus dashboard user through the real
// service and returns it with a valid access token. Requires users, tenants
// and secret_keys tables to be migrated into the test database.
func CreateTestUser(t *testing.T) *TestUser {
	t.Helper()

	userService := users_services.GetUserService()
	email := fmt.Sprintf("user-%s@example.com", uuid.NewString())

	err := userService.SignUp(&users_dto.SignUpRequestDTO{
		Email:      email,
		Password:   "test-password-123",
		TenantName: "Test Tenant",
	})
	require.NoError(t, err)

	response, err := userService.SignIn(&users_dto.SignInRequestDTO{
		Email:    email,
		Password: "test-password-123",
	})
	require.NoError(t, err)

	user, err := userService.GetUserFromToken(response.Token)
	require.NoError(t, err)

	return &TestUser{User: user, Token: response.Token}
}
