package repository

import (
	"context"
	"testing"
	"time"

	"shop-mkononi/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCodeRepoMock(t *testing.T) (VerificationCodeRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewVerificationCodeRepository(mock, zap.NewNop()), mock
}

func TestVerificationCodeRepository_Upsert(t *testing.T) {
	repo, mock := newCodeRepoMock(t)

	now := time.Now()
	code := &entity.VerificationCode{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     uuid.New(),
		Code:       "482913",
		ExpiresAt:  now.Add(15 * time.Minute),
	}

	mock.ExpectExec("INSERT INTO verification_codes").
		WithArgs(code.ID, code.UserID, code.Code, code.ExpiresAt, code.Attempts, code.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Upsert(context.Background(), code)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationCodeRepository_FindByUserID(t *testing.T) {
	repo, mock := newCodeRepoMock(t)

	now := time.Now()
	userID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM verification_codes WHERE user_id =").
		WithArgs(userID).
		WillReturnRows(mock.NewRows([]string{"id", "user_id", "code", "expires_at", "attempts", "created_at"}).
			AddRow(uuid.New(), userID, "482913", now.Add(15*time.Minute), 2, now))

	code, err := repo.FindByUserID(context.Background(), userID)

	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Equal(t, "482913", code.Code)
	assert.Equal(t, 2, code.Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationCodeRepository_FindByUserID_MissingIsNotAnError(t *testing.T) {
	repo, mock := newCodeRepoMock(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM verification_codes WHERE user_id =").
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	code, err := repo.FindByUserID(context.Background(), userID)

	require.NoError(t, err)
	assert.Nil(t, code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationCodeRepository_IncrementAttempts_ReturnsNewCount(t *testing.T) {
	repo, mock := newCodeRepoMock(t)
	userID := uuid.New()

	mock.ExpectQuery("UPDATE verification_codes SET attempts = attempts").
		WithArgs(userID).
		WillReturnRows(mock.NewRows([]string{"attempts"}).AddRow(3))

	attempts, err := repo.IncrementAttempts(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationCodeRepository_IncrementAttempts_MissingCode(t *testing.T) {
	repo, mock := newCodeRepoMock(t)
	userID := uuid.New()

	mock.ExpectQuery("UPDATE verification_codes SET attempts = attempts").
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.IncrementAttempts(context.Background(), userID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationCodeRepository_Delete(t *testing.T) {
	repo, mock := newCodeRepoMock(t)
	userID := uuid.New()

	mock.ExpectExec("DELETE FROM verification_codes").
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), userID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
