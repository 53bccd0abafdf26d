package users_services

import (
	users_repositories "github.com/git-webzoom/assistente-x-hub/internal/features/users/repositories"
)

var secretKeyRepository = &users_repositories.SecretKeyRepository{}
var userRepository = &users_repositories.UserRepository{}
var tenantRepository = &users_repositories.TenantRepository{}

var userService = NewUserService(userRepository, tenantRepository, secretKeyRepository)

func GetUserService() *UserService {
	return userService
}
