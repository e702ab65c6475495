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

type VerificationCodeRepository interface {
	Upsert(ctx context.Context, code *entity.VerificationCode) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VerificationCode, error)
	IncrementAttempts(ctx context.Context, userID uuid.UUID) (int, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type verificationCodeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVerificationCodeRepository(db database.PgxIface, log *zap.Logger) VerificationCodeRepository {
	return &verificationCodeRepository{
		db:  db,
		log: log.With(zap.String("repository", "verification_code")),
	}
}

// Upsert replaces the user's current code and resets the attempt counter.
// user_id is unique, one live code per user.
func (r *verificationCodeRepository) Upsert(ctx context.Context, code *entity.VerificationCode) error {
	query := `
		INSERT INTO verification_codes (id, user_id, code, expires_at, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id)
		DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, attempts = 0
	`

	_, err := r.db.Exec(ctx, query,
		code.ID,
		code.UserID,
		code.Code,
		code.ExpiresAt,
		code.Attempts,
		code.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert verification code",
			zap.Error(err),
			zap.String("user_id", code.UserID.String()),
		)
		return fmt.Errorf("upsert verification code for %s: %w", code.UserID.String(), err)
	}

	return nil
}

func (r *verificationCodeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VerificationCode, error) {
	query := `
		SELECT id, user_id, code, expires_at, attempts, created_at
		FROM verification_codes
		WHERE user_id = $1
	`

	var code entity.VerificationCode
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&code.ID,
		&code.UserID,
		&code.Code,
		&code.ExpiresAt,
		&code.Attempts,
		&code.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find verification code",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find verification code for %s: %w", userID.String(), err)
	}

	return &code, nil
}

// IncrementAttempts bumps the counter atomically and returns the new value,
// so concurrent verification attempts cannot both read the same count.
func (r *verificationCodeRepository) IncrementAttempts(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		UPDATE verification_codes
		SET attempts = attempts + 1
		WHERE user_id = $1
		RETURNING attempts
	`

	var attempts int
	err := r.db.QueryRow(ctx, query, userID).Scan(&attempts)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("verification code for %s not found", userID.String())
	}
	if err != nil {
		r.log.Error("Failed to increment verification attempts",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("increment attempts for %s: %w", userID.String(), err)
	}

	return attempts, nil
}

func (r *verificationCodeRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM verification_codes WHERE user_id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to delete verification code",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("delete verification code for %s: %w", userID.String(), err)
	}

	return nil
}
