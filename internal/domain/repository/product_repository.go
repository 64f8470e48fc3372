package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopsync/internal/common"
	"shopsync/internal/domain/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	// FindByIDAndOwner returns common.ErrNotFound both for a missing id and
	// for an id owned by a different user.
	FindByIDAndOwner(ctx context.Context, id, userID string) (*model.Product, error)
	ListByOwner(ctx context.Context, userID string) ([]model.Product, error)
	UpdateFields(ctx context.Context, product *model.Product) error
	// MarkSynced sets the remote id and the synced status in one statement so
	// readers never observe one without the other.
	MarkSynced(ctx context.Context, id string, wooCommerceID int64) error
	MarkSyncFailed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type pgProductRepository struct {
	db *sql.DB
}

func NewPgProductRepository(db *sql.DB) ProductRepository {
	return &pgProductRepository{db: db}
}

const productColumns = `id, user_id, name, slug, description, price, image_url, status, woocommerce_id, created_at, updated_at`

func (r *pgProductRepository) Create(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products (id, user_id, name, slug, description, price, image_url, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Name, p.Slug, p.Description, p.Price, p.ImageURL, p.Status,
	)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProductRepository) FindByIDAndOwner(ctx context.Context, id, userID string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2`
	p := &model.Product{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.ImageURL,
		&p.Status, &p.WooCommerceID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProductRepository.FindByIDAndOwner: %w", err)
	}
	return p, nil
}

func (r *pgProductRepository) ListByOwner(ctx context.Context, userID string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProductRepository.ListByOwner: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.ImageURL,
			&p.Status, &p.WooCommerceID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgProductRepository.ListByOwner scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProductRepository.ListByOwner rows: %w", err)
	}
	return products, nil
}

func (r *pgProductRepository) UpdateFields(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET
	            name = $1, slug = $2, description = $3, price = $4, image_url = $5,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Slug, p.Description, p.Price, p.ImageURL, p.ID)
	if err != nil {
		return fmt.Errorf("pgProductRepository.UpdateFields: %w", err)
	}
	return nil
}

func (r *pgProductRepository) MarkSynced(ctx context.Context, id string, wooCommerceID int64) error {
	query := `UPDATE products SET woocommerce_id = $1, status = $2, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, wooCommerceID, model.StatusSynced, id)
	if err != nil {
		return fmt.Errorf("pgProductRepository.MarkSynced: %w", err)
	}
	return nil
}

func (r *pgProductRepository) MarkSyncFailed(ctx context.Context, id string) error {
	query := `UPDATE products SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, model.StatusSyncFailed, id)
	if err != nil {
		return fmt.Errorf("pgProductRepository.MarkSyncFailed: %w", err)
	}
	return nil
}

func (r *pgProductRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Delete: %w", err)
	}
	return nil
}
