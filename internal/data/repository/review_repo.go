package repository

import (
	"context"
	"fmt"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
	GetProductReviewStats(ctx context.Context, productID uuid.UUID) (float64, int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, product_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.ProductID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("product_id", review.ProductID.String()),
			zap.String("user_id", review.UserID.String()),
		)
		return fmt.Errorf("create review for product %s: %w", review.ProductID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, user_id, product_id, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		r.log.Error("Failed to query reviews",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("query reviews for %s: %w", productID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ProductID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

// GetProductReviewStats returns the average rating and review count
func (r *reviewRepository) GetProductReviewStats(ctx context.Context, productID uuid.UUID) (float64, int64, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE product_id = $1
	`

	var avgRating float64
	var count int64
	if err := r.db.QueryRow(ctx, query, productID).Scan(&avgRating, &count); err != nil {
		r.log.Error("Failed to get review stats",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return 0, 0, fmt.Errorf("review stats for %s: %w", productID.String(), err)
	}

	return avgRating, count, nil
}
