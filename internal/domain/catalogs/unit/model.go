// Package unit provides the Unit catalog. Units are the organisational
// branches (stores, depots) a manager operates.
package unit

import (
	"backoffice/internal/core/entity"
)

// Unit represents an organisational unit.
type Unit struct {
	entity.Base

	// Address is the unit's physical location.
	Address string `db:"address" json:"address,omitempty"`

	// Phone is the unit's contact number.
	Phone string `db:"phone" json:"phone,omitempty"`
}

// New creates a new Unit.
func New(name string) *Unit {
	return &Unit{Base: entity.NewBase(name)}
}
