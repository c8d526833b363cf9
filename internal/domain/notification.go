package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifNewReview        NotificationType = "new_review"
	NotifBadgeEarned      NotificationType = "badge_earned"
	NotifListingLiked     NotificationType = "listing_liked"
	NotifWishlistDiscount NotificationType = "wishlist_item_discount"
	NotifTripPlanUpdated  NotificationType = "trip_plan_updated"
	NotifSystem           NotificationType = "system_announcement"
	NotifWelcome          NotificationType = "welcome"
)

func (t NotificationType) IsValid() bool {
	_, ok := typeMeta[t]
	return ok
}

type NotificationStatus string

const (
	StatusUnread    NotificationStatus = "unread"
	StatusRead      NotificationStatus = "read"
	StatusDismissed NotificationStatus = "dismissed"
)

func (s NotificationStatus) IsValid() bool {
	switch s {
	case StatusUnread, StatusRead, StatusDismissed:
		return true
	}
	return false
}

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

func (p NotificationPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// NotificationData is the structured payload stored in the JSONB data column.
type NotificationData struct {
	ListingID *uuid.UUID        `json:"listing_id,omitempty"`
	ReviewID  *uuid.UUID        `json:"review_id,omitempty"`
	TripID    *uuid.UUID        `json:"trip_id,omitempty"`
	URL       string            `json:"url,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
}

func (d NotificationData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *NotificationData) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = NotificationData{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	}
	return fmt.Errorf("unsupported type %T for NotificationData", src)
}

type Notification struct {
	ID          uuid.UUID            `json:"id" db:"id"`
	RecipientID uuid.UUID            `json:"recipient_id" db:"recipient_id"`
	SenderID    *uuid.UUID           `json:"sender_id,omitempty" db:"sender_id"`
	Type        NotificationType     `json:"type" db:"type"`
	Title       string               `json:"title" db:"title"`
	Message     string               `json:"message" db:"message"`
	Data        NotificationData     `json:"data" db:"data"`
	Status      NotificationStatus   `json:"status" db:"status"`
	Priority    NotificationPriority `json:"priority" db:"priority"`
	IsRealTime  bool                 `json:"is_real_time" db:"is_real_time"`
	CreatedAt   time.Time            `json:"created_at" db:"created_at"`
	ReadAt      *time.Time           `json:"read_at,omitempty" db:"read_at"`
	DismissedAt *time.Time           `json:"dismissed_at,omitempty" db:"dismissed_at"`
	ExpiresAt   time.Time            `json:"expires_at" db:"expires_at"`

	Sender *NotificationSender `json:"sender,omitempty" db:"-"`
}

type NotificationSender struct {
	ID        uuid.UUID `json:"id" db:"user_id"`
	FullName  string    `json:"full_name" db:"user_full_name"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"user_avatar_url"`
}

type CreateNotificationInput struct {
	RecipientID uuid.UUID             `json:"recipient_id"`
	Type        NotificationType      `json:"type"`
	Title       string                `json:"title"`
	Message     string                `json:"message"`
	SenderID    *uuid.UUID            `json:"sender_id,omitempty"`
	Data        *NotificationData     `json:"data,omitempty"`
	Priority    *NotificationPriority `json:"priority,omitempty"`
	IsRealTime  *bool                 `json:"is_real_time,omitempty"`
	ExpiresAt   *time.Time            `json:"expires_at,omitempty"`
}

// NotificationFilter narrows ListByUser; zero values mean no filter.
type NotificationFilter struct {
	Status NotificationStatus
	Type   NotificationType
}

// TypeMeta is the static per-type metadata resolved once at creation time.
type TypeMeta struct {
	Icon       string
	URLPattern string // fmt pattern over the related entity id, or a fixed path
}

var typeMeta = map[NotificationType]TypeMeta{
	NotifNewReview:        {Icon: "star", URLPattern: "/listings/%s/reviews"},
	NotifBadgeEarned:      {Icon: "award", URLPattern: "/profile/badges"},
	NotifListingLiked:     {Icon: "heart", URLPattern: "/listings/%s"},
	NotifWishlistDiscount: {Icon: "tag", URLPattern: "/listings/%s"},
	NotifTripPlanUpdated:  {Icon: "map", URLPattern: "/trips/%s"},
	NotifSystem:           {Icon: "bell", URLPattern: "/announcements"},
	NotifWelcome:          {Icon: "sun", URLPattern: "/getting-started"},
}

// MetaForType returns the static metadata for a known type.
func MetaForType(t NotificationType) (TypeMeta, bool) {
	m, ok := typeMeta[t]
	return m, ok
}

// DefaultURL resolves the navigation URL for a type from its metadata table,
// substituting the most specific entity reference the payload carries.
func DefaultURL(t NotificationType, data NotificationData) string {
	meta, ok := typeMeta[t]
	if !ok {
		return ""
	}

	var entityID *uuid.UUID
	switch t {
	case NotifNewReview, NotifListingLiked, NotifWishlistDiscount:
		entityID = data.ListingID
	case NotifTripPlanUpdated:
		entityID = data.TripID
	}

	if entityID != nil {
		return fmt.Sprintf(meta.URLPattern, entityID.String())
	}
	if !patternHasVerb(meta.URLPattern) {
		return meta.URLPattern
	}
	return ""
}

func patternHasVerb(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '%' {
			return true
		}
	}
	return false
}

// PushEvent is the wire payload emitted on the push channel as a
// new_notification frame.
type PushEvent struct {
	ID       uuid.UUID            `json:"id"`
	Type     NotificationType     `json:"type"`
	Title    string               `json:"title"`
	Message  string               `json:"message"`
	Priority NotificationPriority `json:"priority"`
	TimeAgo  string               `json:"time_ago"`
	Data     NotificationData     `json:"data"`
	Sender   *NotificationSender  `json:"sender,omitempty"`
}

func NewPushEvent(n *Notification) PushEvent {
	return PushEvent{
		ID:       n.ID,
		Type:     n.Type,
		Title:    n.Title,
		Message:  n.Message,
		Priority: n.Priority,
		TimeAgo:  TimeAgo(n.CreatedAt, time.Now()),
		Data:     n.Data,
		Sender:   n.Sender,
	}
}

// TimeAgo renders a coarse human-readable age for push payloads.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
