// Package product provides the Product catalog.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
)

// Product is a sellable item.
type Product struct {
	entity.Base

	// SKU is the stock keeping code.
	SKU string `db:"sku" json:"sku,omitempty"`

	// Price is the unit price.
	Price decimal.Decimal `db:"price" json:"price"`

	// CategoryID is an optional reference to a Category row.
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`
}

// New creates a new Product.
func New(name string, price decimal.Decimal) *Product {
	return &Product{
		Base:  entity.NewBase(name),
		Price: price,
	}
}

// Validate checks product fields.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Base.Validate(ctx); err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}
	return nil
}
