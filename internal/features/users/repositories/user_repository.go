package users_repositories

import (
	users_models "github.com/git-webzoom/assistente-x-hub/internal/features/users/models"
	"github.com/git-webzoom/assistente-x-hub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct{}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	return storage.GetDb().Create(user).Error
}

func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

type TenantRepository struct{}

func (r *TenantRepository) CreateTenant(tenant *users_models.Tenant) error {
	return storage.GetDb().Create(tenant).Error
}

func (r *TenantRepository) GetTenantByID(tenantID uuid.UUID) (*users_models.Tenant, error) {
	var tenant users_models.Tenant

	if err := storage.GetDb().Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		return nil, err
	}

	return &tenant, nil
}
