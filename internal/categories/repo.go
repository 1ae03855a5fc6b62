package categories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/singhBond/biryani-cat/internal/domain/category"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const categoryCols = `id, name, image, sort_order, created_at, updated_at`

// querier lets the list query run on the pool or inside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// List returns all categories in display order: sort_order ascending,
// newest first on ties.
func (r *Repo) List(ctx context.Context) ([]category.Category, error) {
	return listCategories(ctx, r.db)
}

func listCategories(ctx context.Context, q querier) ([]category.Category, error) {
	rows, err := q.Query(ctx, `
		SELECT `+categoryCols+`
		FROM categories
		ORDER BY sort_order ASC, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, name, image string) (category.Category, error) {
	var c category.Category
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (id, name, image)
		VALUES ($1, $2, $3)
		RETURNING `+categoryCols+`
	`, uuid.NewString(), name, image).Scan(
		&c.ID, &c.Name, &c.Image, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *Repo) Update(ctx context.Context, id string, name, image *string) (category.Category, error) {
	var c category.Category
	err := r.db.QueryRow(ctx, `
		UPDATE categories
		SET
		  name = COALESCE($2, name),
		  image = COALESCE($3, image),
		  updated_at = now()
		WHERE id = $1
		RETURNING `+categoryCols+`
	`, id, name, image).Scan(&c.ID, &c.Name, &c.Image, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Delete removes a category. Its products go with it via the FK cascade.
func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Reorder moves the category at index from to index to within the current
// display order and rewrites every category's sort_order to its new index.
// All writes happen in one transaction, so the persisted order is never a
// partial permutation.
func (r *Repo) Reorder(ctx context.Context, from, to int) ([]category.Category, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT id FROM categories
		ORDER BY sort_order ASC, created_at DESC
		FOR UPDATE
	`)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids, err = Splice(ids, from, to)
	if err != nil {
		return nil, err
	}

	for i, id := range ids {
		if _, err := tx.Exec(ctx, `
			UPDATE categories SET sort_order=$1, updated_at=now() WHERE id=$2
		`, i, id); err != nil {
			return nil, fmt.Errorf("rewrite order for %s: %w", id, err)
		}
	}

	// read the result inside the tx so the returned list is exactly the
	// permutation being committed
	items, err := listCategories(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return items, nil
}
