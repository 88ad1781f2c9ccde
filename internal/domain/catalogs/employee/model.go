// Package employee provides the Employee catalog.
package employee

import (
	"backoffice/internal/core/entity"
)

// Employee is a staff member managed by one or more gestores.
type Employee struct {
	entity.Base

	// Position is the job title.
	Position string `db:"position" json:"position"`

	// Email is the work contact address.
	Email string `db:"email" json:"email,omitempty"`
}

// New creates a new Employee.
func New(name, position string) *Employee {
	return &Employee{
		Base:     entity.NewBase(name),
		Position: position,
	}
}
