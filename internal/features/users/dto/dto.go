package users_dto

import (
	"time"

	users_enums "github.com/git-webzoom/assistente-x-hub/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Email      string `json:"email"      binding:"required,email"`
	Password   string `json:"password"   binding:"required,min=8"`
	TenantName string `json:"tenantName" binding:"required,min=1,max=100"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID   uuid.UUID `json:"userId"`
	TenantID uuid.UUID `json:"tenantId"`
	Email    string    `json:"email"`
	Token    string    `json:"token"`
}

type UserProfileResponseDTO struct {
	ID        uuid.UUID              `json:"id"`
	TenantID  uuid.UUID              `json:"tenantId"`
	Email     string                 `json:"email"`
	Status    users_enums.UserStatus `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
}
