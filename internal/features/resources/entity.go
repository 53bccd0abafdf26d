package resources

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the uniform surface the gateway needs from every tenant-scoped
// row: identity, tenant ownership and creation-time ordering for cursors.
type Entity interface {
	GetID() uuid.UUID
	SetID(id uuid.UUID)
	SetTenantID(tenantID uuid.UUID)
	GetCreatedAt() time.Time
	Stamp(now time.Time)
}

func (c *Contact) GetID() uuid.UUID { return c.ID }
func (c *Contact) SetID(id uuid.UUID) { c.ID = id }
func (c *Contact) SetTenantID(tenantID uuid.UUID) { c.TenantID = tenantID }
func (c *Contact) GetCreatedAt() time.Time { return c.CreatedAt }

func (c *Contact) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (p *Product) GetID() uuid.UUID { return p.ID }
func (p *Product) SetID(id uuid.UUID) { p.ID = id }
func (p *Product) SetTenantID(tenantID uuid.UUID) { p.TenantID = tenantID }
func (p *Product) GetCreatedAt() time.Time { return p.CreatedAt }

func (p *Product) Stamp(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (c *Card) GetID() uuid.UUID { return c.ID }
func (c *Card) SetID(id uuid.UUID) { c.ID = id }
func (c *Card) SetTenantID(tenantID uuid.UUID) { c.TenantID = tenantID }
func (c *Card) GetCreatedAt() time.Time { return c.CreatedAt }

func (c *Card) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (a *Appointment) GetID() uuid.UUID { return a.ID }
func (a *Appointment) SetID(id uuid.UUID) { a.ID = id }
func (a *Appointment) SetTenantID(tenantID uuid.UUID) { a.TenantID = tenantID }
func (a *Appointment) GetCreatedAt() time.Time { return a.CreatedAt }

func (a *Appointment) Stamp(now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}

func (t *Task) GetID() uuid.UUID { return t.ID }
func (t *Task) SetID(id uuid.UUID) { t.ID = id }
func (t *Task) SetTenantID(tenantID uuid.UUID) { t.TenantID = tenantID }
func (t *Task) GetCreatedAt() time.Time { return t.CreatedAt }

func (t *Task) Stamp(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
