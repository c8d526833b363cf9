package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wanderstay-notify/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) (int64, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Dismiss(ctx context.Context, id uuid.UUID) (int64, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, data,
			status, priority, is_real_time, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		notif.ID, notif.RecipientID, notif.SenderID, notif.Type, notif.Title, notif.Message,
		notif.Data, notif.Status, notif.Priority, notif.IsRealTime, notif.CreatedAt, notif.ExpiresAt,
	)
	return err
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE id = $1`
	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	where := `n.recipient_id = $1`
	args := []interface{}{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND n.status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND n.type = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications n WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`
		SELECT
			n.id, n.recipient_id, n.sender_id, n.type, n.title, n.message, n.data,
			n.status, n.priority, n.is_real_time, n.created_at, n.read_at, n.dismissed_at, n.expires_at,
			u.id as sender_user_id, u.full_name as sender_full_name, u.avatar_url as sender_avatar_url
		FROM notifications n
		LEFT JOIN users u ON n.sender_id = u.id
		WHERE %s
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var senderID *uuid.UUID
		var senderName *string
		var senderAvatar *string
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Title, &n.Message, &n.Data,
			&n.Status, &n.Priority, &n.IsRealTime, &n.CreatedAt, &n.ReadAt, &n.DismissedAt, &n.ExpiresAt,
			&senderID, &senderName, &senderAvatar,
		)
		if err != nil {
			return nil, 0, err
		}
		if senderID != nil && senderName != nil {
			n.Sender = &domain.NotificationSender{ID: *senderID, FullName: *senderName, AvatarURL: senderAvatar}
		}
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND status = 'unread'`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

// MarkAsRead transitions unread→read. The status guard makes the call
// idempotent: a second invocation matches no rows and leaves read_at intact.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET status = 'read', read_at = NOW() WHERE id = $1 AND status = 'unread'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET status = 'read', read_at = NOW() WHERE recipient_id = $1 AND status = 'unread'`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Dismiss is reachable from unread or read; dismissed is terminal, so an
// already-dismissed row matches no rows and the call is a no-op.
func (r *notificationRepository) Dismiss(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET status = 'dismissed', dismissed_at = NOW() WHERE id = $1 AND status IN ('unread', 'read')`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) PurgeExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM notifications WHERE expires_at <= NOW()`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
