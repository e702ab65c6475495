package repository

import (
	"context"
	"fmt"
	"strings"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ProductFilter narrows product listings. All fields optional.
type ProductFilter struct {
	CategoryID *uuid.UUID
	ShopID     *uuid.UUID
	Search     *string
	MinPrice   *float64
	MaxPrice   *float64
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	CountAll(ctx context.Context, filter ProductFilter) (int64, error)
	FindByShopID(ctx context.Context, shopID uuid.UUID) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `p.id, p.shop_id, p.category_id, p.name, p.description, p.price, p.stock,
	       p.condition, p.delivery_methods, p.is_active, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var product entity.Product
	err := row.Scan(
		&product.ID,
		&product.ShopID,
		&product.CategoryID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.Condition,
		&product.DeliveryMethods,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, shop_id, category_id, name, description, price, stock,
		                     condition, delivery_methods, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.ShopID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Condition,
		product.DeliveryMethods,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("name", product.Name),
			zap.String("shop_id", product.ShopID.String()),
		)
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return product, nil
}

func buildProductFilter(filter ProductFilter) (string, []any) {
	conditions := []string{"p.is_active = true"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, "p.category_id = "+arg(*filter.CategoryID))
	}
	if filter.ShopID != nil {
		conditions = append(conditions, "p.shop_id = "+arg(*filter.ShopID))
	}
	if filter.Search != nil {
		placeholder := arg("%" + *filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", placeholder, placeholder))
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, "p.price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, "p.price <= "+arg(*filter.MaxPrice))
	}

	return strings.Join(conditions, " AND "), args
}

func (r *productRepository) FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error) {
	where, args := buildProductFilter(filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`SELECT `+productColumns+`
		FROM products p
		WHERE %s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	return r.queryProducts(ctx, query, args...)
}

func (r *productRepository) CountAll(ctx context.Context, filter ProductFilter) (int64, error) {
	where, args := buildProductFilter(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM products p WHERE %s`, where)

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) FindByShopID(ctx context.Context, shopID uuid.UUID) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p
		WHERE p.shop_id = $1 AND p.is_active = true
		ORDER BY p.created_at DESC`

	return r.queryProducts(ctx, query, shopID)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query products", zap.Error(err))
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, description = $4, price = $5, stock = $6,
		    condition = $7, delivery_methods = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Condition,
		product.DeliveryMethods,
		product.IsActive,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", product.ID.String())
	}

	return nil
}

// Deactivate soft-deletes via the active flag
func (r *productRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE products SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("deactivate product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	return nil
}
