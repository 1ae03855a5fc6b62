package products

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/singhBond/biryani-cat/internal/domain/product"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const productCols = `id, category_id, name, price, half_price, quantity, images, veg, created_at, updated_at`

// ListByCategory returns a category's products, newest first. A non-empty
// search narrows to names containing it, case-insensitively.
func (r *Repo) ListByCategory(ctx context.Context, categoryID, search string) ([]product.Product, error) {
	q := `
		SELECT ` + productCols + `
		FROM products
		WHERE category_id = $1
	`
	args := []any{categoryID}
	if search != "" {
		q += ` AND name ILIKE '%' || $2 || '%'`
		args = append(args, search)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.HalfPrice,
			&p.Quantity, &p.Images, &p.Veg, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type CreateInput struct {
	CategoryID string
	Name       string
	Price      float64
	HalfPrice  *float64
	Quantity   string
	Images     []string
	Veg        bool
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (product.Product, error) {
	if in.Images == nil {
		in.Images = []string{}
	}
	var p product.Product
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (id, category_id, name, price, half_price, quantity, images, veg)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+productCols+`
	`, uuid.NewString(), in.CategoryID, in.Name, in.Price, in.HalfPrice, in.Quantity, in.Images, in.Veg).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.HalfPrice,
		&p.Quantity, &p.Images, &p.Veg, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

type UpdateInput struct {
	Name      *string
	Price     *float64
	HalfPrice *float64
	Quantity  *string
	Images    []string // nil leaves images unchanged
	Veg       *bool
}

func (r *Repo) Update(ctx context.Context, categoryID, id string, in UpdateInput) (product.Product, error) {
	var p product.Product
	err := r.db.QueryRow(ctx, `
		UPDATE products
		SET
		  name = COALESCE($3, name),
		  price = COALESCE($4, price),
		  half_price = COALESCE($5, half_price),
		  quantity = COALESCE($6, quantity),
		  images = COALESCE($7, images),
		  veg = COALESCE($8, veg),
		  updated_at = now()
		WHERE id = $2 AND category_id = $1
		RETURNING `+productCols+`
	`, categoryID, id, in.Name, in.Price, in.HalfPrice, in.Quantity, in.Images, in.Veg).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.HalfPrice,
		&p.Quantity, &p.Images, &p.Veg, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *Repo) Delete(ctx context.Context, categoryID, id string) error {
	ct, err := r.db.Exec(ctx, `
		DELETE FROM products WHERE id=$2 AND category_id=$1
	`, categoryID, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
