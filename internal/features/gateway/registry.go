package gateway

import (
	"github.com/git-webzoom/assistente-x-hub/internal/features/resources"
)

// ResourceDef binds a path segment to a tenant-scoped table. Exposing a new
// entity through the gateway means adding an entry here, not new control
// flow.
type ResourceDef struct {
	Name        string
	EventEntity string
	NewEntity   func() resources.Entity
	NewSlice    func() any

	// Includes maps ?include= names onto gorm associations to eager-load.
	Includes map[string]string
}

type ResourceRegistry map[string]*ResourceDef

func DefaultResourceRegistry() ResourceRegistry {
	return ResourceRegistry{
		"contacts": {
			Name:        "contacts",
			EventEntity: "contact",
			NewEntity:   func() resources.Entity { return &resources.Contact{} },
			NewSlice:    func() any { return &[]*resources.Contact{} },
			Includes:    map[string]string{"appointments": "Appointments"},
		},
		"products": {
			Name:        "products",
			EventEntity: "product",
			NewEntity:   func() resources.Entity { return &resources.Product{} },
			NewSlice:    func() any { return &[]*resources.Product{} },
		},
		"cards": {
			Name:        "cards",
			EventEntity: "card",
			NewEntity:   func() resources.Entity { return &resources.Card{} },
			NewSlice:    func() any { return &[]*resources.Card{} },
			Includes:    map[string]string{"contact": "Contact"},
		},
		"appointments": {
			Name:        "appointments",
			EventEntity: "appointment",
			NewEntity:   func() resources.Entity { return &resources.Appointment{} },
			NewSlice:    func() any { return &[]*resources.Appointment{} },
			Includes:    map[string]string{"contact": "Contact"},
		},
		"tasks": {
			Name:        "tasks",
			EventEntity: "task",
			NewEntity:   func() resources.Entity { return &resources.Task{} },
			NewSlice:    func() any { return &[]*resources.Task{} },
			Includes:    map[string]string{"card": "Card"},
		},
	}
}
