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

// ShopFilter narrows shop listings. All fields optional.
type ShopFilter struct {
	CategoryID *uuid.UUID
	Location   *string
	Search     *string
	MinPrice   *float64
	MaxPrice   *float64
}

type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Shop, error)
	FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*entity.Shop, error)
	FindAll(ctx context.Context, filter ShopFilter, limit, offset int) ([]*entity.Shop, error)
	CountAll(ctx context.Context, filter ShopFilter) (int64, error)
	Update(ctx context.Context, shop *entity.Shop) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type shopRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShopRepository(db database.PgxIface, log *zap.Logger) ShopRepository {
	return &shopRepository{
		db:  db,
		log: log.With(zap.String("repository", "shop")),
	}
}

const shopColumns = `s.id, s.slug, s.name, s.description, s.category_id, s.location, s.seller_id,
	       s.logo_url, s.banner_url, s.primary_color, s.theme, s.buyer_verification,
	       s.is_active, s.created_at, s.updated_at`

func scanShop(row pgx.Row) (*entity.Shop, error) {
	var shop entity.Shop
	err := row.Scan(
		&shop.ID,
		&shop.Slug,
		&shop.Name,
		&shop.Description,
		&shop.CategoryID,
		&shop.Location,
		&shop.SellerID,
		&shop.LogoURL,
		&shop.BannerURL,
		&shop.PrimaryColor,
		&shop.Theme,
		&shop.BuyerVerification,
		&shop.IsActive,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	query := `
		INSERT INTO shops (id, slug, name, description, category_id, location, seller_id,
		                  logo_url, banner_url, primary_color, theme, buyer_verification,
		                  is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		shop.ID,
		shop.Slug,
		shop.Name,
		shop.Description,
		shop.CategoryID,
		shop.Location,
		shop.SellerID,
		shop.LogoURL,
		shop.BannerURL,
		shop.PrimaryColor,
		shop.Theme,
		shop.BuyerVerification,
		shop.IsActive,
		shop.CreatedAt,
		shop.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create shop",
			zap.Error(err),
			zap.String("slug", shop.Slug),
		)
		return fmt.Errorf("create shop %s: %w", shop.Slug, err)
	}

	return nil
}

func (r *shopRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops s WHERE s.id = $1`

	shop, err := scanShop(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find shop by ID",
			zap.Error(err),
			zap.String("shop_id", id.String()),
		)
		return nil, fmt.Errorf("find shop by ID %s: %w", id.String(), err)
	}

	return shop, nil
}

func (r *shopRepository) FindBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops s WHERE s.slug = $1`

	shop, err := scanShop(r.db.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find shop by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find shop by slug %s: %w", slug, err)
	}

	return shop, nil
}

// FindBySellerID returns the seller's shop. One shop per seller.
func (r *shopRepository) FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*entity.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops s WHERE s.seller_id = $1`

	shop, err := scanShop(r.db.QueryRow(ctx, query, sellerID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find shop by seller",
			zap.Error(err),
			zap.String("seller_id", sellerID.String()),
		)
		return nil, fmt.Errorf("find shop by seller %s: %w", sellerID.String(), err)
	}

	return shop, nil
}

// buildShopFilter assembles WHERE conditions with positional args only.
// User input never reaches the query text.
func buildShopFilter(filter ShopFilter) (string, []any) {
	conditions := []string{"s.is_active = true"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, "s.category_id = "+arg(*filter.CategoryID))
	}
	if filter.Location != nil {
		conditions = append(conditions, "s.location ILIKE "+arg("%"+*filter.Location+"%"))
	}
	if filter.Search != nil {
		p := arg("%" + *filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(s.name ILIKE %s OR s.description ILIKE %s)", p, p))
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		sub := "EXISTS(SELECT 1 FROM products p WHERE p.shop_id = s.id AND p.is_active = true"
		if filter.MinPrice != nil {
			sub += " AND p.price >= " + arg(*filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			sub += " AND p.price <= " + arg(*filter.MaxPrice)
		}
		sub += ")"
		conditions = append(conditions, sub)
	}

	return strings.Join(conditions, " AND "), args
}

func (r *shopRepository) FindAll(ctx context.Context, filter ShopFilter, limit, offset int) ([]*entity.Shop, error) {
	where, args := buildShopFilter(filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`SELECT `+shopColumns+`
		FROM shops s
		WHERE %s
		ORDER BY s.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query shops", zap.Error(err))
		return nil, fmt.Errorf("query shops: %w", err)
	}
	defer rows.Close()

	var shops []*entity.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			r.log.Error("Failed to scan shop row", zap.Error(err))
			return nil, fmt.Errorf("scan shop row: %w", err)
		}
		shops = append(shops, shop)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate shop rows: %w", err)
	}

	return shops, nil
}

func (r *shopRepository) CountAll(ctx context.Context, filter ShopFilter) (int64, error) {
	where, args := buildShopFilter(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM shops s WHERE %s`, where)

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count shops", zap.Error(err))
		return 0, fmt.Errorf("count shops: %w", err)
	}

	return count, nil
}

func (r *shopRepository) Update(ctx context.Context, shop *entity.Shop) error {
	query := `
		UPDATE shops
		SET slug = $2, name = $3, description = $4, category_id = $5, location = $6,
		    logo_url = $7, banner_url = $8, primary_color = $9, theme = $10,
		    buyer_verification = $11, is_active = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		shop.ID,
		shop.Slug,
		shop.Name,
		shop.Description,
		shop.CategoryID,
		shop.Location,
		shop.LogoURL,
		shop.BannerURL,
		shop.PrimaryColor,
		shop.Theme,
		shop.BuyerVerification,
		shop.IsActive,
		shop.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update shop",
			zap.Error(err),
			zap.String("shop_id", shop.ID.String()),
		)
		return fmt.Errorf("update shop %s: %w", shop.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("shop %s not found", shop.ID.String())
	}

	return nil
}

// Deactivate soft-deletes via the active flag
func (r *shopRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE shops SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate shop",
			zap.Error(err),
			zap.String("shop_id", id.String()),
		)
		return fmt.Errorf("deactivate shop %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("shop %s not found", id.String())
	}

	return nil
}
