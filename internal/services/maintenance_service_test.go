package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockExperienceResetRepository is a mock implementation of ExperienceResetRepository
type mockExperienceResetRepository struct {
	affected int64
	err      error
}

func (m *mockExperienceResetRepository) ResetWeekly(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.affected, nil
}

// mockTokenCleanupRepository is a mock implementation of TokenCleanupRepository
type mockTokenCleanupRepository struct {
	removed   int64
	err       error
	gotCutoff time.Time
}

func (m *mockTokenCleanupRepository) DeleteExpiredTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	m.gotCutoff = cutoff
	if m.err != nil {
		return 0, m.err
	}
	return m.removed, nil
}

func TestMaintenanceService_ResetWeeklyXP(t *testing.T) {
	tests := []struct {
		name          string
		repo          *mockExperienceResetRepository
		expected      int64
		expectedError bool
	}{
		{
			name:     "success",
			repo:     &mockExperienceResetRepository{affected: 37},
			expected: 37,
		},
		{
			name:     "no users to reset",
			repo:     &mockExperienceResetRepository{affected: 0},
			expected: 0,
		},
		{
			name:          "repository error",
			repo:          &mockExperienceResetRepository{err: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMaintenanceService(tt.repo, &mockTokenCleanupRepository{}, 7*24*time.Hour, zap.NewNop())

			affected, err := svc.ResetWeeklyXP(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Zero(t, affected)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, affected)
			}
		})
	}
}

func TestMaintenanceService_CleanExpiredTokens(t *testing.T) {
	tests := []struct {
		name          string
		repo          *mockTokenCleanupRepository
		expected      int64
		expectedError bool
	}{
		{
			name:     "success",
			repo:     &mockTokenCleanupRepository{removed: 12},
			expected: 12,
		},
		{
			name:          "repository error",
			repo:          &mockTokenCleanupRepository{err: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMaintenanceService(&mockExperienceResetRepository{}, tt.repo, 7*24*time.Hour, zap.NewNop())

			removed, err := svc.CleanExpiredTokens(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Zero(t, removed)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, removed)
			}
		})
	}
}

func TestMaintenanceService_CleanExpiredTokens_Cutoff(t *testing.T) {
	repo := &mockTokenCleanupRepository{}
	expiry := 7 * 24 * time.Hour
	svc := NewMaintenanceService(&mockExperienceResetRepository{}, repo, expiry, zap.NewNop())

	before := time.Now().Add(-expiry)
	_, err := svc.CleanExpiredTokens(context.Background())
	after := time.Now().Add(-expiry)

	assert.NoError(t, err)
	assert.False(t, repo.gotCutoff.Before(before))
	assert.False(t, repo.gotCutoff.After(after))
}
