package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/volleyball-stats/internal/domain/rowset"
)

// QueryRepository runs ad-hoc statements on a read-only connection switched
// to query_only. The store is never modified even if a caller skips the
// SELECT guard.
type QueryRepository struct {
	store *Store
}

func NewQueryRepository(store *Store) *QueryRepository {
	return &QueryRepository{store: store}
}

func (r *QueryRepository) Select(ctx context.Context, query string) (rowset.Result, error) {
	if !r.store.Exists() {
		return rowset.Result{}, fmt.Errorf("%w: %s", rowset.ErrStoreMissing, r.store.Path())
	}

	var result rowset.Result
	err := r.store.withReadOnlyDB(ctx, func(db *sqlx.DB) error {
		conn, err := db.Connx(ctx)
		if err != nil {
			return fmt.Errorf("acquire connection: %w", err)
		}
		defer conn.Close()

		if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
			return fmt.Errorf("enable query_only: %w", err)
		}

		rows, err := conn.QueryxContext(ctx, query)
		if err != nil {
			return fmt.Errorf("execute query: %w", err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("read columns: %w", err)
		}
		result.Columns = columns
		result.Rows = make([][]any, 0)

		for rows.Next() {
			values, err := rows.SliceScan()
			if err != nil {
				return fmt.Errorf("scan row: %w", err)
			}
			for i, value := range values {
				if raw, ok := value.([]byte); ok {
					values[i] = string(raw)
				}
			}
			result.Rows = append(result.Rows, values)
		}
		return rows.Err()
	})
	if err != nil {
		return rowset.Result{}, err
	}
	return result, nil
}
