package catalog_repo

import (
	"backoffice/internal/domain"
	"backoffice/internal/domain/catalogs/category"
	"backoffice/internal/domain/catalogs/employee"
	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/domain/catalogs/unit"
	"backoffice/internal/domain/ownership"
	"backoffice/internal/infrastructure/storage/postgres"
)

// Compile-time checks that the typed repos satisfy the domain contracts.
var (
	_ domain.ResourceRepository[*employee.Employee] = (*EmployeeRepo)(nil)
	_ domain.ResourceRepository[*unit.Unit]         = (*UnitRepo)(nil)
	_ domain.ResourceRepository[*category.Category] = (*CategoryRepo)(nil)
	_ domain.ResourceRepository[*product.Product]   = (*ProductRepo)(nil)
)

// EmployeeRepo persists Employee rows.
type EmployeeRepo struct {
	*BaseResourceRepo[*employee.Employee]
}

// NewEmployeeRepo creates an employee repository.
func NewEmployeeRepo(txManager *postgres.TxManager) *EmployeeRepo {
	return &EmployeeRepo{
		BaseResourceRepo: NewBaseResourceRepo[*employee.Employee](
			txManager,
			"employees",
			string(ownership.TypeEmployee),
			postgres.ExtractDBColumns[employee.Employee](),
		),
	}
}

// UnitRepo persists Unit rows.
type UnitRepo struct {
	*BaseResourceRepo[*unit.Unit]
}

// NewUnitRepo creates a unit repository.
func NewUnitRepo(txManager *postgres.TxManager) *UnitRepo {
	return &UnitRepo{
		BaseResourceRepo: NewBaseResourceRepo[*unit.Unit](
			txManager,
			"units",
			string(ownership.TypeUnit),
			postgres.ExtractDBColumns[unit.Unit](),
		),
	}
}

// CategoryRepo persists Category rows.
type CategoryRepo struct {
	*BaseResourceRepo[*category.Category]
}

// NewCategoryRepo creates a category repository.
func NewCategoryRepo(txManager *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseResourceRepo: NewBaseResourceRepo[*category.Category](
			txManager,
			"categories",
			string(ownership.TypeCategory),
			postgres.ExtractDBColumns[category.Category](),
		),
	}
}

// ProductRepo persists Product rows.
type ProductRepo struct {
	*BaseResourceRepo[*product.Product]
}

// NewProductRepo creates a product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseResourceRepo: NewBaseResourceRepo[*product.Product](
			txManager,
			"products",
			string(ownership.TypeProduct),
			postgres.ExtractDBColumns[product.Product](),
		),
	}
}
