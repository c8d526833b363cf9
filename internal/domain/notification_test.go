package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotificationType_IsValid(t *testing.T) {
	valid := []NotificationType{
		NotifNewReview, NotifBadgeEarned, NotifListingLiked,
		NotifWishlistDiscount, NotifTripPlanUpdated, NotifSystem, NotifWelcome,
	}
	for _, typ := range valid {
		assert.True(t, typ.IsValid(), "expected %s to be valid", typ)
	}

	assert.False(t, NotificationType("friend_request").IsValid())
	assert.False(t, NotificationType("").IsValid())
}

func TestDefaultURL(t *testing.T) {
	listingID := uuid.New()
	tripID := uuid.New()

	t.Run("listing-scoped types substitute the listing id", func(t *testing.T) {
		data := NotificationData{ListingID: &listingID}

		assert.Equal(t, "/listings/"+listingID.String(), DefaultURL(NotifListingLiked, data))
		assert.Equal(t, "/listings/"+listingID.String(), DefaultURL(NotifWishlistDiscount, data))
		assert.Equal(t, "/listings/"+listingID.String()+"/reviews", DefaultURL(NotifNewReview, data))
	})

	t.Run("trip type substitutes the trip id", func(t *testing.T) {
		data := NotificationData{TripID: &tripID}
		assert.Equal(t, "/trips/"+tripID.String(), DefaultURL(NotifTripPlanUpdated, data))
	})

	t.Run("fixed-path types ignore the payload", func(t *testing.T) {
		assert.Equal(t, "/profile/badges", DefaultURL(NotifBadgeEarned, NotificationData{ListingID: &listingID}))
		assert.Equal(t, "/announcements", DefaultURL(NotifSystem, NotificationData{}))
		assert.Equal(t, "/getting-started", DefaultURL(NotifWelcome, NotificationData{}))
	})

	t.Run("entity-scoped pattern without an entity resolves empty", func(t *testing.T) {
		assert.Equal(t, "", DefaultURL(NotifListingLiked, NotificationData{}))
	})

	t.Run("unknown type resolves empty", func(t *testing.T) {
		assert.Equal(t, "", DefaultURL(NotificationType("bogus"), NotificationData{}))
	})
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"under a minute", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(tt.at, now))
		})
	}
}

func TestNewPushEvent(t *testing.T) {
	senderID := uuid.New()
	notif := &Notification{
		ID:          uuid.New(),
		RecipientID: uuid.New(),
		Type:        NotifListingLiked,
		Title:       "Listing liked",
		Message:     "Ana liked Seaside Cabin",
		Priority:    PriorityLow,
		CreatedAt:   time.Now(),
		Sender:      &NotificationSender{ID: senderID, FullName: "Ana"},
	}

	event := NewPushEvent(notif)

	assert.Equal(t, notif.ID, event.ID)
	assert.Equal(t, notif.Type, event.Type)
	assert.Equal(t, notif.Title, event.Title)
	assert.Equal(t, notif.Message, event.Message)
	assert.Equal(t, notif.Priority, event.Priority)
	assert.Equal(t, "just now", event.TimeAgo)
	assert.Equal(t, senderID, event.Sender.ID)
}
