package preference

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"wanderstay-notify/internal/domain"
	"wanderstay-notify/internal/repository"
)

// Service answers "may this notification type be created for this user".
// It fails open: a missing preference, an unknown user or a store error must
// never block notification creation.
type Service interface {
	IsEnabled(ctx context.Context, userID uuid.UUID, t domain.NotificationType) bool
	Get(ctx context.Context, userID uuid.UUID) (domain.PreferenceMap, error)
	Update(ctx context.Context, userID uuid.UUID, input domain.UpdatePreferencesInput) (domain.PreferenceMap, error)
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) IsEnabled(ctx context.Context, userID uuid.UUID, t domain.NotificationType) bool {
	prefs, err := s.userRepo.GetPreferences(ctx, userID)
	if err != nil {
		log.Printf("preference: lookup for %s failed, allowing %s: %v", userID, t, err)
		return true
	}
	return prefs.Enabled(t)
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (domain.PreferenceMap, error) {
	prefs, err := s.userRepo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = domain.PreferenceMap{}
	}
	return prefs, nil
}

// Update merges the submitted entries into the stored map. Unknown types are
// rejected on write even though reads tolerate them.
func (s *service) Update(ctx context.Context, userID uuid.UUID, input domain.UpdatePreferencesInput) (domain.PreferenceMap, error) {
	for t := range input.Preferences {
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownType, t)
		}
	}

	prefs, err := s.userRepo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = domain.PreferenceMap{}
	}
	for t, enabled := range input.Preferences {
		prefs[t] = enabled
	}

	if err := s.userRepo.UpdatePreferences(ctx, userID, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
