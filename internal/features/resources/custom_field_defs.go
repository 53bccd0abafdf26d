package resources

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/git-webzoom/assistente-x-hub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CustomFieldDefRepository struct{}

func (r *CustomFieldDefRepository) CreateDef(def *CustomFieldDef) error {
	if def.ID == uuid.Nil {
		def.ID = uuid.New()
	}

	if def.CreatedAt.IsZero() {
		def.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(def).Error
}

func (r *CustomFieldDefRepository) GetDefsByTenantID(tenantID uuid.UUID, entityName string) ([]*CustomFieldDef, error) {
	var defs = make([]*CustomFieldDef, 0)

	query := storage.GetDb().
		Where("tenant_id = ?", tenantID).
		Order("display_order ASC")

	if entityName != "" {
		query = query.Where("entity_name = ?", entityName)
	}

	err := query.Find(&defs).Error

	return defs, err
}

type CreateCustomFieldDefRequestDTO struct {
	EntityName   string   `json:"entityName"   binding:"required,oneof=contacts products cards appointments tasks"`
	FieldName    string   `json:"fieldName"    binding:"required,min=1,max=64"`
	FieldLabel   string   `json:"fieldLabel"   binding:"required,min=1,max=128"`
	FieldType    string   `json:"fieldType"    binding:"required,oneof=text number email phone date select multiselect checkbox textarea url"`
	FieldOptions []string `json:"fieldOptions,omitempty"`
	DefaultValue *string  `json:"defaultValue,omitempty"`
	IsRequired   bool     `json:"isRequired"`
	DisplayOrder int      `json:"displayOrder"`
}

type GetCustomFieldDefsResponseDTO struct {
	Defs []*CustomFieldDef `json:"defs"`
}

type CustomFieldDefService struct {
	repository *CustomFieldDefRepository
}

func NewCustomFieldDefService(repository *CustomFieldDefRepository) *CustomFieldDefService {
	return &CustomFieldDefService{repository: repository}
}

func (s *CustomFieldDefService) CreateDef(
	tenantID uuid.UUID,
	request *CreateCustomFieldDefRequestDTO,
) (*CustomFieldDef, error) {
	def := &CustomFieldDef{
		ID:           uuid.New(),
		TenantID:     tenantID,
		EntityName:   request.EntityName,
		FieldName:    request.FieldName,
		FieldLabel:   request.FieldLabel,
		FieldType:    request.FieldType,
		DefaultValue: request.DefaultValue,
		IsRequired:   request.IsRequired,
		DisplayOrder: request.DisplayOrder,
		IsActive:     true,
	}

	if len(request.FieldOptions) > 0 {
		options, err := json.Marshal(request.FieldOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field options: %w", err)
		}
		def.FieldOptions = datatypes.JSON(options)
	}

	if err := s.repository.CreateDef(def); err != nil {
		return nil, fmt.Errorf("failed to create custom field definition: %w", err)
	}

	return def, nil
}

func (s *CustomFieldDefService) GetDefs(tenantID uuid.UUID, entityName string) ([]*CustomFieldDef, error) {
	return s.repository.GetDefsByTenantID(tenantID, entityName)
}
