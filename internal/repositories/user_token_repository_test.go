package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flypacademy/podcast-academy/internal/models"
)

// setupUserTokenTestRepository creates a user token repository with a mock database
func setupUserTokenTestRepository(t *testing.T) (*userTokenRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserTokenRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestUserTokenRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		userToken     *models.UserToken
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:      "success",
			userToken: &models.UserToken{UserID: 1, Token: "refresh-token"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_tokens`).
					WithArgs(1, "refresh-token").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
		},
		{
			name:      "database error",
			userToken: &models.UserToken{UserID: 1, Token: "refresh-token"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_tokens`).
					WithArgs(1, "refresh-token").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.userToken)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTokenRepository_GetByToken(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError string
		expectedUser  int
	}{
		{
			name:  "found",
			token: "refresh-token",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "token"}).
					AddRow(5, 1, "refresh-token")
				mock.ExpectQuery(`SELECT id, user_id, token`).
					WithArgs("refresh-token").
					WillReturnRows(rows)
			},
			expectedUser: 1,
		},
		{
			name:  "not found",
			token: "unknown",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, token`).
					WithArgs("unknown").
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token"}))
			},
			expectedError: "token not found",
		},
		{
			name:  "database error",
			token: "refresh-token",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, token`).
					WithArgs("refresh-token").
					WillReturnError(errors.New("database error"))
			},
			expectedError: "failed to get user token by token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			userToken, err := repo.GetByToken(context.Background(), tt.token)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser, userToken.UserID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTokenRepository_UpdateToken(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_tokens`).
					WithArgs("new-token", "old-token", 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "token not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_tokens`).
					WithArgs("new-token", "old-token", 1).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: "token not found or user mismatch",
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_tokens`).
					WithArgs("new-token", "old-token", 1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: "failed to update user token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateToken(context.Background(), "old-token", "new-token", 1)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTokenRepository_DeleteByToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupUserTokenTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM user_tokens WHERE token`).
			WithArgs("refresh-token").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteByToken(context.Background(), "refresh-token")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserTokenRepository_DeleteExpiredTokens(t *testing.T) {
	cutoff := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expected      int64
	}{
		{
			name: "deletes old tokens",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM user_tokens WHERE created_at`).
					WithArgs(cutoff).
					WillReturnResult(sqlmock.NewResult(0, 12))
			},
			expected: 12,
		},
		{
			name: "nothing to delete",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM user_tokens WHERE created_at`).
					WithArgs(cutoff).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expected: 0,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM user_tokens WHERE created_at`).
					WithArgs(cutoff).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			deleted, err := repo.DeleteExpiredTokens(context.Background(), cutoff)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, deleted)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
