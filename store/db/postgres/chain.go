package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/chainviz/chainviz/store"
)

func (d *DB) CreateChain(ctx context.Context, create *store.Chain) (*store.Chain, error) {
	fields := []string{"name", "content", "is_favorite"}
	placeholderValues := []any{create.Name, create.Content, create.IsFavorite}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}

	stmt := `INSERT INTO chain (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create chain: %w", err)
	}

	return create, nil
}

func (d *DB) ListChains(ctx context.Context, find *store.FindChain) ([]*store.Chain, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "chain.id = "+placeholder(len(args)+1)), append(args, *v)
	}

	// Insertion order.
	query := `
		SELECT id, name, content, is_favorite, created_ts
		FROM chain
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY chain.id ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chains: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Chain, 0)
	for rows.Next() {
		var chain store.Chain
		if err := rows.Scan(
			&chain.ID,
			&chain.Name,
			&chain.Content,
			&chain.IsFavorite,
			&chain.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chain: %w", err)
		}
		list = append(list, &chain)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chains: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateChain(ctx context.Context, update *store.UpdateChain) (*store.Chain, error) {
	set, args := []string{}, []any{}

	if v := update.IsFavorite; v != nil {
		set, args = append(set, "is_favorite = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		// Nothing to change; report the current row.
		return d.getChain(ctx, update.ID)
	}

	args = append(args, update.ID)

	stmt := `UPDATE chain SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)) + `
		RETURNING id, name, content, is_favorite, created_ts`

	var chain store.Chain
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&chain.ID,
		&chain.Name,
		&chain.Content,
		&chain.IsFavorite,
		&chain.CreatedTs,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update chain: %w", err)
	}

	return &chain, nil
}

func (d *DB) DeleteChain(ctx context.Context, delete *store.DeleteChain) error {
	stmt := `DELETE FROM chain WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete chain: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("chain not found")
	}

	return nil
}

func (d *DB) getChain(ctx context.Context, id int32) (*store.Chain, error) {
	list, err := d.ListChains(ctx, &store.FindChain{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
