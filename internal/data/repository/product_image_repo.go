package repository

import (
	"context"
	"fmt"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductImageRepository interface {
	CreateBatch(ctx context.Context, images []*entity.ProductImage) error
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error)
	DeleteByProductID(ctx context.Context, productID uuid.UUID) error
}

type productImageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductImageRepository(db database.PgxIface, log *zap.Logger) ProductImageRepository {
	return &productImageRepository{
		db:  db,
		log: log.With(zap.String("repository", "product_image")),
	}
}

// CreateBatch inserts all image references for a product in one statement
func (r *productImageRepository) CreateBatch(ctx context.Context, images []*entity.ProductImage) error {
	if len(images) == 0 {
		return nil
	}

	query := `INSERT INTO product_images (id, product_id, url, created_at) VALUES `
	args := make([]any, 0, len(images)*4)

	for i, image := range images {
		if i > 0 {
			query += ", "
		}
		base := i * 4
		query += fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4)
		args = append(args, image.ID, image.ProductID, image.URL, image.CreatedAt)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create product images",
			zap.Error(err),
			zap.Int("count", len(images)),
			zap.String("product_id", images[0].ProductID.String()),
		)
		return fmt.Errorf("create %d product images: %w", len(images), err)
	}

	return nil
}

func (r *productImageRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error) {
	query := `
		SELECT id, product_id, url, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		r.log.Error("Failed to query product images",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("query product images for %s: %w", productID.String(), err)
	}
	defer rows.Close()

	var images []*entity.ProductImage
	for rows.Next() {
		var image entity.ProductImage
		if err := rows.Scan(&image.ID, &image.ProductID, &image.URL, &image.CreatedAt); err != nil {
			r.log.Error("Failed to scan product image row", zap.Error(err))
			return nil, fmt.Errorf("scan product image row: %w", err)
		}
		images = append(images, &image)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product image rows: %w", err)
	}

	return images, nil
}

func (r *productImageRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	query := `DELETE FROM product_images WHERE product_id = $1`

	_, err := r.db.Exec(ctx, query, productID)
	if err != nil {
		r.log.Error("Failed to delete product images",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("delete product images for %s: %w", productID.String(), err)
	}

	return nil
}
