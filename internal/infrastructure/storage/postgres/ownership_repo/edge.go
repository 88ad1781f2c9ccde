// Package ownership_repo provides the PostgreSQL ownership junction store.
package ownership_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/ownership"
	"backoffice/internal/infrastructure/storage/postgres"
)

const tableName = "ownerships"

// EdgeRepo implements ownership.EdgeRepository.
type EdgeRepo struct {
	txManager *postgres.TxManager
}

// NewEdgeRepo creates a new ownership edge repository.
func NewEdgeRepo(txManager *postgres.TxManager) *EdgeRepo {
	return &EdgeRepo{txManager: txManager}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *EdgeRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *EdgeRepo) existsQuery(managerID string, rt ownership.ResourceType, resourceID id.ID) squirrel.SelectBuilder {
	return r.Builder().
		Select("1").
		From(tableName).
		Where(squirrel.Eq{
			"manager_id":    managerID,
			"resource_type": string(rt),
			"resource_id":   resourceID,
		}).
		Limit(1)
}

// Exists reports whether an edge (managerID, rt, resourceID) is present.
func (r *EdgeRepo) Exists(ctx context.Context, managerID string, rt ownership.ResourceType, resourceID id.ID) (bool, error) {
	sql, args, err := r.existsQuery(managerID, rt, resourceID).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var one int
	err = querier.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query %s: %w", tableName, err)
	}
	return true, nil
}

// Link inserts an ownership edge.
func (r *EdgeRepo) Link(ctx context.Context, edge *ownership.Edge) error {
	q := r.Builder().
		Insert(tableName).
		Columns("manager_id", "resource_type", "resource_id", "created_at").
		Values(edge.ManagerID, string(edge.Type), edge.ResourceID, edge.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", tableName, err)
	}
	return nil
}

func (r *EdgeRepo) unlinkQuery(rt ownership.ResourceType, resourceID id.ID) squirrel.DeleteBuilder {
	return r.Builder().
		Delete(tableName).
		Where(squirrel.Eq{
			"resource_type": string(rt),
			"resource_id":   resourceID,
		})
}

// Unlink removes every edge referencing the resource.
func (r *EdgeRepo) Unlink(ctx context.Context, rt ownership.ResourceType, resourceID id.ID) (int64, error) {
	sql, args, err := r.unlinkQuery(rt, resourceID).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", tableName, err)
	}
	return result.RowsAffected(), nil
}

// ListResourceIDs returns the ids of all resources of the family linked
// to the manager.
func (r *EdgeRepo) ListResourceIDs(ctx context.Context, managerID string, rt ownership.ResourceType) ([]id.ID, error) {
	q := r.Builder().
		Select("resource_id").
		From(tableName).
		Where(squirrel.Eq{
			"manager_id":    managerID,
			"resource_type": string(rt),
		}).
		OrderBy("resource_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var ids []id.ID
	if err := pgxscan.Select(ctx, querier, &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("query %s: %w", tableName, err)
	}
	return ids, nil
}
