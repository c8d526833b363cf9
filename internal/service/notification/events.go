package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"wanderstay-notify/internal/domain"
)

// Typed entry points for collaborator subsystems. Each is a thin wrapper
// over CreateAndNotify; callers invoke them after their own commit and must
// not let a failure here affect that commit.

func (s *service) NotifyNewReview(ctx context.Context, hostID, reviewerID, listingID, reviewID uuid.UUID, reviewerName, listingTitle string) (*domain.Notification, error) {
	return s.CreateAndNotify(ctx, domain.CreateNotificationInput{
		RecipientID: hostID,
		SenderID:    &reviewerID,
		Type:        domain.NotifNewReview,
		Title:       "New review",
		Message:     fmt.Sprintf("%s left a review on %s", reviewerName, listingTitle),
		Data: &domain.NotificationData{
			ListingID: &listingID,
			ReviewID:  &reviewID,
		},
	})
}

func (s *service) NotifyBadgeEarned(ctx context.Context, userID uuid.UUID, badgeName string) (*domain.Notification, error) {
	return s.CreateAndNotify(ctx, domain.CreateNotificationInput{
		RecipientID: userID,
		Type:        domain.NotifBadgeEarned,
		Title:       "Badge earned",
		Message:     fmt.Sprintf("You earned the %s badge", badgeName),
		Data: &domain.NotificationData{
			Meta: map[string]string{"badge": badgeName},
		},
	})
}

func (s *service) NotifyListingLiked(ctx context.Context, hostID, likerID, listingID uuid.UUID, likerName, listingTitle string) (*domain.Notification, error) {
	priority := domain.PriorityLow
	return s.CreateAndNotify(ctx, domain.CreateNotificationInput{
		RecipientID: hostID,
		SenderID:    &likerID,
		Type:        domain.NotifListingLiked,
		Title:       "Listing liked",
		Message:     fmt.Sprintf("%s liked %s", likerName, listingTitle),
		Priority:    &priority,
		Data: &domain.NotificationData{
			ListingID: &listingID,
		},
	})
}

func (s *service) NotifyWishlistDiscount(ctx context.Context, userID, listingID uuid.UUID, listingTitle string, discountPercent int) (*domain.Notification, error) {
	priority := domain.PriorityHigh
	return s.CreateAndNotify(ctx, domain.CreateNotificationInput{
		RecipientID: userID,
		Type:        domain.NotifWishlistDiscount,
		Title:       "Price drop on your wishlist",
		Message:     fmt.Sprintf("%s is now %d%% off", listingTitle, discountPercent),
		Priority:    &priority,
		Data: &domain.NotificationData{
			ListingID: &listingID,
			Meta:      map[string]string{"discount_percent": fmt.Sprintf("%d", discountPercent)},
		},
	})
}

func (s *service) NotifyTripPlanUpdated(ctx context.Context, memberID, editorID, tripID uuid.UUID, editorName, tripName string) (*domain.Notification, error) {
	return s.CreateAndNotify(ctx, domain.CreateNotificationInput{
		RecipientID: memberID,
		SenderID:    &editorID,
		Type:        domain.NotifTripPlanUpdated,
		Title:       "Trip plan updated",
		Message:     fmt.Sprintf("%s made changes to %s", editorName, tripName),
		Data: &domain.NotificationData{
			TripID: &tripID,
		},
	})
}

func (s *service) NotifyWelcome(ctx context.Context, userID uuid.UUID, fullName string) (*domain.Notification, error) {
	return s.CreateAndNotify(ctx, domain.CreateNotificationInput{
		RecipientID: userID,
		Type:        domain.NotifWelcome,
		Title:       "Welcome to Wanderstay",
		Message:     fmt.Sprintf("Hi %s, start by adding your first wishlist", fullName),
	})
}
