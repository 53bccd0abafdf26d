package resources

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Tenant-scoped CRM entities served through the external gateway. Every
// table carries tenant_id; the gateway scopes all queries by it.

type Contact struct {
	ID           uuid.UUID      `json:"id"            gorm:"column:id;primaryKey"`
	TenantID     uuid.UUID      `json:"tenant_id"     gorm:"column:tenant_id;index"`
	Name         string         `json:"name"          gorm:"column:name"`
	Email        *string        `json:"email"         gorm:"column:email"`
	Phone        *string        `json:"phone"         gorm:"column:phone"`
	Company      *string        `json:"company"       gorm:"column:company"`
	CustomFields datatypes.JSON `json:"custom_fields" gorm:"column:custom_fields"`
	CreatedAt    time.Time      `json:"created_at"    gorm:"column:created_at"`
	UpdatedAt    time.Time      `json:"updated_at"    gorm:"column:updated_at"`

	Appointments []*Appointment `json:"appointments,omitempty" gorm:"foreignKey:ContactID"`
}

func (Contact) TableName() string {
	return "contacts"
}

type Product struct {
	ID            uuid.UUID `json:"id"              gorm:"column:id;primaryKey"`
	TenantID      uuid.UUID `json:"tenant_id"       gorm:"column:tenant_id;index"`
	Name          string    `json:"name"            gorm:"column:name"`
	Description   *string   `json:"description"     gorm:"column:description"`
	SKU           *string   `json:"sku"             gorm:"column:sku"`
	Price         *float64  `json:"price"           gorm:"column:price"`
	Cost          *float64  `json:"cost"            gorm:"column:cost"`
	StockQuantity int       `json:"stock_quantity"  gorm:"column:stock_quantity"`
	MinStockLevel int       `json:"min_stock_level" gorm:"column:min_stock_level"`
	Category      *string   `json:"category"        gorm:"column:category"`
	IsActive      bool      `json:"is_active"       gorm:"column:is_active"`
	CreatedAt     time.Time `json:"created_at"      gorm:"column:created_at"`
	UpdatedAt     time.Time `json:"updated_at"      gorm:"column:updated_at"`
}

func (Product) TableName() string {
	return "products"
}

type Card struct {
	ID          uuid.UUID      `json:"id"          gorm:"column:id;primaryKey"`
	TenantID    uuid.UUID      `json:"tenant_id"   gorm:"column:tenant_id;index"`
	ContactID   *uuid.UUID     `json:"contact_id"  gorm:"column:contact_id"`
	Title       string         `json:"title"       gorm:"column:title"`
	Value       float64        `json:"value"       gorm:"column:value"`
	Description *string        `json:"description" gorm:"column:description"`
	Tags        datatypes.JSON `json:"tags"        gorm:"column:tags"`
	CreatedAt   time.Time      `json:"created_at"  gorm:"column:created_at"`
	UpdatedAt   time.Time      `json:"updated_at"  gorm:"column:updated_at"`

	Contact *Contact `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
}

func (Card) TableName() string {
	return "cards"
}

type Appointment struct {
	ID        uuid.UUID  `json:"id"         gorm:"column:id;primaryKey"`
	TenantID  uuid.UUID  `json:"tenant_id"  gorm:"column:tenant_id;index"`
	CardID    *uuid.UUID `json:"card_id"    gorm:"column:card_id"`
	ContactID *uuid.UUID `json:"contact_id" gorm:"column:contact_id"`
	Title     string     `json:"title"      gorm:"column:title"`
	StartTime time.Time  `json:"start_time" gorm:"column:start_time"`
	EndTime   time.Time  `json:"end_time"   gorm:"column:end_time"`
	Location  *string    `json:"location"   gorm:"column:location"`
	Status    string     `json:"status"     gorm:"column:status"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"column:updated_at"`

	Contact *Contact `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
}

func (Appointment) TableName() string {
	return "appointments"
}

type Task struct {
	ID         uuid.UUID  `json:"id"          gorm:"column:id;primaryKey"`
	TenantID   uuid.UUID  `json:"tenant_id"   gorm:"column:tenant_id;index"`
	CardID     *uuid.UUID `json:"card_id"     gorm:"column:card_id"`
	AssignedTo *uuid.UUID `json:"assigned_to" gorm:"column:assigned_to"`
	Title      string     `json:"title"       gorm:"column:title"`
	DueDate    *time.Time `json:"due_date"    gorm:"column:due_date"`
	Status     string     `json:"status"      gorm:"column:status"`
	Notes      *string    `json:"notes"       gorm:"column:notes"`
	CreatedAt  time.Time  `json:"created_at"  gorm:"column:created_at"`
	UpdatedAt  time.Time  `json:"updated_at"  gorm:"column:updated_at"`

	Card *Card `json:"card,omitempty" gorm:"foreignKey:CardID"`
}

func (Task) TableName() string {
	return "tasks"
}

// CustomFieldDef declares a tenant-defined attribute rendered by the
// dashboard and stored in an entity's custom_fields JSON column.
type CustomFieldDef struct {
	ID           uuid.UUID      `json:"id"            gorm:"column:id;primaryKey"`
	TenantID     uuid.UUID      `json:"tenant_id"     gorm:"column:tenant_id;index"`
	EntityName   string         `json:"entity_name"   gorm:"column:entity_name"`
	FieldName    string         `json:"field_name"    gorm:"column:field_name"`
	FieldLabel   string         `json:"field_label"   gorm:"column:field_label"`
	FieldType    string         `json:"field_type"    gorm:"column:field_type"`
	FieldOptions datatypes.JSON `json:"field_options" gorm:"column:field_options"`
	DefaultValue *string        `json:"default_value" gorm:"column:default_value"`
	IsRequired   bool           `json:"is_required"   gorm:"column:is_required"`
	DisplayOrder int            `json:"display_order" gorm:"column:display_order"`
	IsActive     bool           `json:"is_active"     gorm:"column:is_active"`
	CreatedAt    time.Time      `json:"created_at"    gorm:"column:created_at"`
}

func (CustomFieldDef) TableName() string {
	return "custom_field_defs"
}
