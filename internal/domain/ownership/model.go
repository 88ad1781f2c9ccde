// Package ownership decides whether a principal may act on a resource
// and sequences cascading deletes of resources and their ownership
// edges.
package ownership

import (
	"errors"
	"time"

	"backoffice/internal/core/id"
)

// ResourceType names a resource family guarded by ownership edges.
type ResourceType string

const (
	TypeEmployee ResourceType = "employee"
	TypeUnit     ResourceType = "unit"
	TypeCategory ResourceType = "category"
	TypeProduct  ResourceType = "product"
)

// Valid reports whether t names a known resource family.
func (t ResourceType) Valid() bool {
	switch t {
	case TypeEmployee, TypeUnit, TypeCategory, TypeProduct:
		return true
	}
	return false
}

// Edge is a junction row linking a manager to a resource. Created by
// the same operation that creates the resource; removed before the
// resource row on delete.
type Edge struct {
	ManagerID  string       `db:"manager_id"`
	Type       ResourceType `db:"resource_type"`
	ResourceID id.ID        `db:"resource_id"`
	CreatedAt  time.Time    `db:"created_at"`
}

// ErrDenied is returned when no ownership edge authorizes the caller.
// The message is deliberately uniform: it never reveals whether the
// resource exists.
var ErrDenied = errors.New("access denied")

// ErrDeleteIncomplete marks a cascading delete whose second step failed
// after the ownership edges were already removed. The enclosing
// transaction rolls the edge removal back, but the failure is surfaced
// distinctly so it is logged as an inconsistency, never swallowed.
var ErrDeleteIncomplete = errors.New("cascading delete incomplete")
