package users_models

import (
	"time"

	users_enums "github.com/git-webzoom/assistente-x-hub/internal/features/users/enums"

	"github.com/google/uuid"
)

// User is a dashboard identity. Dashboard sessions are how a tenant manages
// its API keys and webhooks; external API calls never authenticate this way.
type User struct {
	ID                   uuid.UUID              `json:"id"        gorm:"column:id;primaryKey"`
	TenantID             uuid.UUID              `json:"tenantId"  gorm:"column:tenant_id"`
	Email                string                 `json:"email"     gorm:"column:email"`
	HashedPassword       *string                `json:"-"         gorm:"column:hashed_password"`
	PasswordCreationTime time.Time              `json:"-"         gorm:"column:password_creation_time"`
	Status               users_enums.UserStatus `json:"status"    gorm:"column:status"`
	CreatedAt            time.Time              `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActiveUser() bool {
	return u.Status == users_enums.UserStatusActive
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}
