package dto

import (
	"github.com/shopspring/decimal"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/catalogs/category"
	"backoffice/internal/domain/catalogs/employee"
	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/domain/catalogs/unit"
)

// --- Employee ---

type CreateEmployeeRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Email    string `json:"email"`
}

func (r CreateEmployeeRequest) ToModel() *employee.Employee {
	e := employee.New(r.Name, r.Position)
	e.Email = r.Email
	return e
}

type UpdateEmployeeRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Email    string `json:"email"`
}

func (r UpdateEmployeeRequest) Apply(e *employee.Employee) *employee.Employee {
	e.Name = r.Name
	e.Position = r.Position
	e.Email = r.Email
	return e
}

// --- Unit ---

type CreateUnitRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (r CreateUnitRequest) ToModel() *unit.Unit {
	u := unit.New(r.Name)
	u.Address = r.Address
	u.Phone = r.Phone
	return u
}

type UpdateUnitRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (r UpdateUnitRequest) Apply(u *unit.Unit) *unit.Unit {
	u.Name = r.Name
	u.Address = r.Address
	u.Phone = r.Phone
	return u
}

// --- Category ---

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CreateCategoryRequest) ToModel() *category.Category {
	c := category.New(r.Name)
	c.Description = r.Description
	return c
}

type UpdateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r UpdateCategoryRequest) Apply(c *category.Category) *category.Category {
	c.Name = r.Name
	c.Description = r.Description
	return c
}

// --- Product ---

type CreateProductRequest struct {
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *string         `json:"categoryId"`
}

func (r CreateProductRequest) ToModel() (*product.Product, error) {
	p := product.New(r.Name, r.Price)
	p.SKU = r.SKU
	if r.CategoryID != nil && *r.CategoryID != "" {
		catID, err := id.Parse(*r.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = &catID
	}
	return p, nil
}

type UpdateProductRequest struct {
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *string         `json:"categoryId"`
}

func (r UpdateProductRequest) Apply(p *product.Product) (*product.Product, error) {
	p.Name = r.Name
	p.SKU = r.SKU
	p.Price = r.Price
	p.CategoryID = nil
	if r.CategoryID != nil && *r.CategoryID != "" {
		catID, err := id.Parse(*r.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = &catID
	}
	return p, nil
}
