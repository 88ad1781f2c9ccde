// Package catalog_repo provides PostgreSQL implementations for the
// resource catalog repositories.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/infrastructure/storage/postgres"
)

// BaseResourceRepo provides common CRUD operations for resource rows.
// Embed this in specific catalog repositories.
//
// Listing for a manager is always a join against the ownerships
// junction table; rows without a matching edge are never returned.
type BaseResourceRepo[T any] struct {
	txManager    *postgres.TxManager
	tableName    string
	resourceType string
	selectCols   []string
}

// NewBaseResourceRepo creates a new base resource repository.
func NewBaseResourceRepo[T any](
	txManager *postgres.TxManager,
	tableName string,
	resourceType string,
	selectCols []string,
) *BaseResourceRepo[T] {
	return &BaseResourceRepo[T]{
		txManager:    txManager,
		tableName:    tableName,
		resourceType: resourceType,
		selectCols:   selectCols,
	}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *BaseResourceRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new entity using its "db" tags.
func (r *BaseResourceRepo[T]) Create(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	// Only include columns that exist in the table
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}
	return nil
}

// GetByID retrieves a single entity.
func (r *BaseResourceRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	var entity T

	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build select: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &entity, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity, apperror.NewNotFound(r.resourceType, entityID.String())
		}
		return entity, fmt.Errorf("query %s: %w", r.tableName, err)
	}
	return entity, nil
}

// Update modifies an existing entity with optimistic locking.
func (r *BaseResourceRepo[T]) Update(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue // id never changes; version is managed here
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConflict("record was modified concurrently or does not exist").
			WithDetail("entity", r.resourceType).
			WithDetail("id", entityID)
	}
	return nil
}

// Delete removes the entity row. The ownership edges must already have
// been removed by the caller (the engine sequences this).
func (r *BaseResourceRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.resourceType, entityID)
	}
	return nil
}

// ownedSelect builds the join against the ownerships junction table.
func (r *BaseResourceRepo[T]) ownedSelect(managerID string) squirrel.SelectBuilder {
	cols := make([]string, len(r.selectCols))
	for i, col := range r.selectCols {
		cols[i] = "t." + col
	}

	return r.Builder().
		Select(cols...).
		From(r.tableName + " t").
		Join("ownerships o ON o.resource_id = t.id AND o.resource_type = ?", r.resourceType).
		Where(squirrel.Eq{"o.manager_id": managerID}).
		OrderBy("t.name")
}

// ListOwnedBy returns the rows linked to the manager via ownerships.
func (r *BaseResourceRepo[T]) ListOwnedBy(ctx context.Context, managerID string) ([]T, error) {
	sql, args, err := r.ownedSelect(managerID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build owned select: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var entities []T
	if err := pgxscan.Select(ctx, querier, &entities, sql, args...); err != nil {
		return nil, fmt.Errorf("query %s: %w", r.tableName, err)
	}
	return entities, nil
}

// ListAll returns every row of the table. Admin listings only.
func (r *BaseResourceRepo[T]) ListAll(ctx context.Context) ([]T, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var entities []T
	if err := pgxscan.Select(ctx, querier, &entities, sql, args...); err != nil {
		return nil, fmt.Errorf("query %s: %w", r.tableName, err)
	}
	return entities, nil
}
