package users_models

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	Name      string    `json:"name"      gorm:"column:name"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}
