package repository

import (
	"context"
	"fmt"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	PhoneTakenByOther(ctx context.Context, phone string, selfID uuid.UUID) (bool, error)
	FindSellerApplications(ctx context.Context) ([]*entity.User, error)
	FindVerificationQueue(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ApproveSellerApplication(ctx context.Context, user *entity.User, shop *entity.Shop) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, email, password, name, phone, image, role, requested_role,
	       verification_status, verification_notes, id_number, id_front_image,
	       id_back_image, selfie_image, phone_verified, is_verified, verified_at,
	       created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Phone,
		&user.Image,
		&user.Role,
		&user.RequestedRole,
		&user.VerificationStatus,
		&user.VerificationNotes,
		&user.IDNumber,
		&user.IDFrontImage,
		&user.IDBackImage,
		&user.SelfieImage,
		&user.PhoneVerified,
		&user.IsVerified,
		&user.VerifiedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password, name, phone, image, role, requested_role,
		                  verification_status, verification_notes, id_number, id_front_image,
		                  id_back_image, selfie_image, phone_verified, is_verified, verified_at,
		                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Phone,
		user.Image,
		user.Role,
		user.RequestedRole,
		user.VerificationStatus,
		user.VerificationNotes,
		user.IDNumber,
		user.IDFrontImage,
		user.IDBackImage,
		user.SelfieImage,
		user.PhoneVerified,
		user.IsVerified,
		user.VerifiedAt,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

// PhoneTakenByOther checks phone uniqueness excluding the caller's own record,
// so re-saving the same number never reads as a conflict.
func (ur *userRepository) PhoneTakenByOther(ctx context.Context, phone string, selfID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE phone = $1 AND id != $2)`

	var taken bool
	err := ur.db.QueryRow(ctx, query, phone, selfID).Scan(&taken)
	if err != nil {
		ur.log.Error("Failed to check phone uniqueness",
			zap.Error(err),
			zap.String("phone", phone),
		)
		return false, fmt.Errorf("check phone %s: %w", phone, err)
	}

	return taken, nil
}

// FindSellerApplications lists users waiting on a seller-role decision
func (ur *userRepository) FindSellerApplications(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE requested_role = 'SELLER' AND verification_status = 'PENDING'
		ORDER BY created_at DESC`

	return ur.queryUsers(ctx, query)
}

// FindVerificationQueue lists pending verifications plus those decided in the
// last 7 days, for the admin review screen.
func (ur *userRepository) FindVerificationQueue(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE verification_status = 'PENDING'
		   OR (verification_status IN ('VERIFIED', 'REJECTED') AND updated_at >= NOW() - INTERVAL '7 days')
		ORDER BY verification_status ASC, created_at DESC`

	return ur.queryUsers(ctx, query)
}

func (ur *userRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		ur.log.Error("Failed to query users", zap.Error(err))
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, password = $3, name = $4, phone = $5, image = $6,
		    role = $7, requested_role = $8, verification_status = $9,
		    verification_notes = $10, id_number = $11, id_front_image = $12,
		    id_back_image = $13, selfie_image = $14, phone_verified = $15,
		    is_verified = $16, verified_at = $17, updated_at = $18
		WHERE id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Phone,
		user.Image,
		user.Role,
		user.RequestedRole,
		user.VerificationStatus,
		user.VerificationNotes,
		user.IDNumber,
		user.IDFrontImage,
		user.IDBackImage,
		user.SelfieImage,
		user.PhoneVerified,
		user.IsVerified,
		user.VerifiedAt,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", user.ID.String())
	}

	return nil
}

// ApproveSellerApplication flips the role and provisions the shop in a single
// transaction. A crash between the two writes must not strand a SELLER
// without a shop.
func (ur *userRepository) ApproveSellerApplication(ctx context.Context, user *entity.User, shop *entity.Shop) error {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		ur.log.Error("Failed to begin approval transaction", zap.Error(err))
		return fmt.Errorf("begin approval tx: %w", err)
	}
	defer tx.Rollback(ctx)

	updateQuery := `
		UPDATE users
		SET role = $2, requested_role = NULL, verification_status = $3,
		    verification_notes = $4, is_verified = $5, verified_at = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, updateQuery,
		user.ID,
		user.Role,
		user.VerificationStatus,
		user.VerificationNotes,
		user.IsVerified,
		user.VerifiedAt,
		user.UpdatedAt,
	)
	if err != nil {
		ur.log.Error("Failed to update user in approval transaction",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("approve user %s: %w", user.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", user.ID.String())
	}

	if shop != nil {
		insertQuery := `
			INSERT INTO shops (id, slug, name, description, category_id, location, seller_id,
			                  logo_url, banner_url, primary_color, theme, buyer_verification,
			                  is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`

		_, err = tx.Exec(ctx, insertQuery,
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
			ur.log.Error("Failed to provision shop in approval transaction",
				zap.Error(err),
				zap.String("user_id", user.ID.String()),
				zap.String("slug", shop.Slug),
			)
			return fmt.Errorf("provision shop for %s: %w", user.ID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		ur.log.Error("Failed to commit approval transaction",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("commit approval tx: %w", err)
	}

	return nil
}
