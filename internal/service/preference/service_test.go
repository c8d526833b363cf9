package preference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wanderstay-notify/internal/domain"
	"wanderstay-notify/internal/service/preference"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetPreferences(ctx context.Context, userID uuid.UUID) (domain.PreferenceMap, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.PreferenceMap), args.Error(1)
}

func (m *mockUserRepo) UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs domain.PreferenceMap) error {
	args := m.Called(ctx, userID, prefs)
	return args.Error(0)
}

func TestIsEnabled(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("explicit opt-out disables", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := preference.NewService(repo)

		repo.On("GetPreferences", ctx, userID).Return(domain.PreferenceMap{domain.NotifListingLiked: false}, nil).Once()

		assert.False(t, svc.IsEnabled(ctx, userID, domain.NotifListingLiked))
	})

	t.Run("unset type is enabled", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := preference.NewService(repo)

		repo.On("GetPreferences", ctx, userID).Return(domain.PreferenceMap{}, nil).Once()

		assert.True(t, svc.IsEnabled(ctx, userID, domain.NotifNewReview))
	})

	t.Run("store error fails open", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := preference.NewService(repo)

		repo.On("GetPreferences", ctx, userID).Return(nil, errors.New("connection refused")).Once()

		assert.True(t, svc.IsEnabled(ctx, userID, domain.NotifNewReview))
	})

	t.Run("unknown user fails open", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := preference.NewService(repo)

		repo.On("GetPreferences", ctx, userID).Return(nil, domain.ErrUserNotFound).Once()

		assert.True(t, svc.IsEnabled(ctx, userID, domain.NotifWelcome))
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("merges into existing map", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := preference.NewService(repo)

		repo.On("GetPreferences", ctx, userID).Return(domain.PreferenceMap{domain.NotifNewReview: false}, nil).Once()
		repo.On("UpdatePreferences", ctx, userID, domain.PreferenceMap{
			domain.NotifNewReview:    false,
			domain.NotifListingLiked: false,
		}).Return(nil).Once()

		prefs, err := svc.Update(ctx, userID, domain.UpdatePreferencesInput{
			Preferences: map[domain.NotificationType]bool{domain.NotifListingLiked: false},
		})

		assert.NoError(t, err)
		assert.False(t, prefs.Enabled(domain.NotifNewReview))
		assert.False(t, prefs.Enabled(domain.NotifListingLiked))
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown types on write", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := preference.NewService(repo)

		_, err := svc.Update(ctx, userID, domain.UpdatePreferencesInput{
			Preferences: map[domain.NotificationType]bool{"friend_request": true},
		})

		assert.ErrorIs(t, err, domain.ErrUnknownType)
		repo.AssertNotCalled(t, "UpdatePreferences", mock.Anything, mock.Anything, mock.Anything)
	})
}
