package notification

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"wanderstay-notify/internal/config"
	"wanderstay-notify/internal/domain"
	"wanderstay-notify/internal/realtime"
	"wanderstay-notify/internal/repository"
	"wanderstay-notify/internal/service/email"
	"wanderstay-notify/internal/service/preference"
)

const unreadCountCacheTTL = 5 * time.Minute

// Broadcaster fans a payload out to a user's active push channels and
// reports how many accepted it. realtime.Registry satisfies this; tests
// inject doubles.
type Broadcaster interface {
	Broadcast(userID uuid.UUID, event string, payload interface{}) int
}

// Service is the single entry point collaborators call after their own
// state change has committed. Persistence is the hard guarantee; push and
// email are best-effort side effects.
type Service interface {
	CreateAndNotify(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Dismiss(ctx context.Context, id uuid.UUID) error
	PurgeExpired(ctx context.Context) (int64, error)

	NotifyNewReview(ctx context.Context, hostID, reviewerID, listingID, reviewID uuid.UUID, reviewerName, listingTitle string) (*domain.Notification, error)
	NotifyBadgeEarned(ctx context.Context, userID uuid.UUID, badgeName string) (*domain.Notification, error)
	NotifyListingLiked(ctx context.Context, hostID, likerID, listingID uuid.UUID, likerName, listingTitle string) (*domain.Notification, error)
	NotifyWishlistDiscount(ctx context.Context, userID, listingID uuid.UUID, listingTitle string, discountPercent int) (*domain.Notification, error)
	NotifyTripPlanUpdated(ctx context.Context, memberID, editorID, tripID uuid.UUID, editorName, tripName string) (*domain.Notification, error)
	NotifyWelcome(ctx context.Context, userID uuid.UUID, fullName string) (*domain.Notification, error)
}

type service struct {
	notifRepo   repository.NotificationRepository
	userRepo    repository.UserRepository
	prefs       preference.Service
	broadcaster Broadcaster
	emailSvc    email.Service
	redis       *redis.Client
	cfg         *config.Config
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	prefs preference.Service,
	broadcaster Broadcaster,
	emailSvc email.Service,
	redisClient *redis.Client,
	cfg *config.Config,
) Service {
	return &service{
		notifRepo:   notifRepo,
		userRepo:    userRepo,
		prefs:       prefs,
		broadcaster: broadcaster,
		emailSvc:    emailSvc,
		redis:       redisClient,
		cfg:         cfg,
	}
}

// CreateAndNotify validates, filters, persists and then pushes. A recipient
// who disabled the type gets (nil, nil): suppression is correct behavior,
// not a failure. Push happens only after the row is committed and its
// failure never unwinds the write.
func (s *service) CreateAndNotify(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	if input.RecipientID == uuid.Nil {
		return nil, domain.ErrMissingRecipient
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownType, input.Type)
	}
	if input.Title == "" {
		return nil, domain.ErrMissingTitle
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, *input.Priority)
	}

	if !s.prefs.IsEnabled(ctx, input.RecipientID, input.Type) {
		return nil, nil
	}

	now := time.Now().UTC()

	data := domain.NotificationData{}
	if input.Data != nil {
		data = *input.Data
	}
	if data.URL == "" {
		data.URL = domain.DefaultURL(input.Type, data)
	}

	priority := domain.PriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
	}
	isRealTime := true
	if input.IsRealTime != nil {
		isRealTime = *input.IsRealTime
	}
	expiresAt := now.Add(s.cfg.NotificationTTL)
	if input.ExpiresAt != nil && input.ExpiresAt.After(now) {
		expiresAt = *input.ExpiresAt
	}

	notif := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: input.RecipientID,
		SenderID:    input.SenderID,
		Type:        input.Type,
		Title:       input.Title,
		Message:     input.Message,
		Data:        data,
		Status:      domain.StatusUnread,
		Priority:    priority,
		IsRealTime:  isRealTime,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}

	if input.SenderID != nil {
		if sender, err := s.userRepo.GetByID(ctx, *input.SenderID); err == nil {
			notif.Sender = sender.AsSender()
		}
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("failed to persist notification: %w", err)
	}

	s.invalidateUnreadCount(ctx, notif.RecipientID)

	if isRealTime && s.broadcaster != nil {
		s.broadcaster.Broadcast(notif.RecipientID, realtime.EventNewNotification, domain.NewPushEvent(notif))
	}

	if priority == domain.PriorityUrgent && s.emailSvc != nil {
		if recipient, err := s.userRepo.GetByID(ctx, notif.RecipientID); err == nil && recipient.Email != "" {
			go func(toEmail, name, title, message, url string) {
				ctx := context.Background()
				if err := s.emailSvc.SendUrgentNotificationEmail(ctx, toEmail, name, title, message, url); err != nil {
					log.Printf("notification: urgent email to %s failed: %v", toEmail, err)
				}
			}(recipient.Email, recipient.FullName, notif.Title, notif.Message, data.URL)
		}
	}

	return notif, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	return s.notifRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.Limit, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	cacheKey := unreadCountKey(userID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, cacheKey, count, unreadCountCacheTTL).Err()
	}

	return count, nil
}

// MarkAsRead is idempotent: re-invoking on a read notification is a no-op
// that leaves read_at at its first value. Dismissed is terminal.
func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif.Status != domain.StatusUnread {
		return nil
	}

	if _, err := s.notifRepo.MarkAsRead(ctx, id); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, notif.RecipientID)
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.notifRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

// Dismiss is reachable from unread or read; repeat dismissal is a no-op.
func (s *service) Dismiss(ctx context.Context, id uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif.Status == domain.StatusDismissed {
		return nil
	}

	if _, err := s.notifRepo.Dismiss(ctx, id); err != nil {
		return err
	}
	if notif.Status == domain.StatusUnread {
		s.invalidateUnreadCount(ctx, notif.RecipientID)
	}
	return nil
}

func (s *service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.notifRepo.PurgeExpired(ctx)
}

func (s *service) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, unreadCountKey(userID)).Err()
}

func unreadCountKey(userID uuid.UUID) string {
	return "notifications:unread:" + userID.String()
}
