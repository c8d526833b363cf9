package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wanderstay-notify/internal/config"
	"wanderstay-notify/internal/domain"
	"wanderstay-notify/internal/middleware"
	"wanderstay-notify/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
	cfg          *config.Config
}

func NewNotificationHandler(notifService notification.Service, cfg *config.Config) *NotificationHandler {
	return &NotificationHandler{notifService: notifService, cfg: cfg}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	params := domain.DefaultPagination()
	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil && page > 0 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit", "20")); err == nil && limit > 0 {
		params.Limit = limit
	}
	params.Validate()

	var filter domain.NotificationFilter
	if status := c.Query("status"); status != "" {
		s := domain.NotificationStatus(status)
		if !s.IsValid() {
			return middleware.BadRequest("Invalid status filter")
		}
		filter.Status = s
	}
	if typ := c.Query("type"); typ != "" {
		t := domain.NotificationType(typ)
		if !t.IsValid() {
			return middleware.BadRequest("Invalid type filter")
		}
		filter.Type = t
	}

	result, err := h.notifService.List(c.Context(), userID, filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notifService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.MarkAsRead(c.Context(), notifID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.notifService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.Dismiss(c.Context(), notifID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type testNotificationRequest struct {
	Type     domain.NotificationType     `json:"type"`
	Title    string                      `json:"title"`
	Message  string                      `json:"message"`
	Priority domain.NotificationPriority `json:"priority"`
}

// SendTest creates a synthetic notification for the calling user. Development
// environments only.
func (h *NotificationHandler) SendTest(c *fiber.Ctx) error {
	if !h.cfg.IsDevelopment() {
		return middleware.Forbidden("Test notifications are disabled outside development")
	}

	userID := middleware.GetCurrentUserID(c)

	req := testNotificationRequest{
		Type:    domain.NotifSystem,
		Title:   "Test notification",
		Message: "If you can read this, the push channel works.",
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	input := domain.CreateNotificationInput{
		RecipientID: userID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
	}
	if req.Priority != "" {
		input.Priority = &req.Priority
	}

	notif, err := h.notifService.CreateAndNotify(c.Context(), input)
	if err != nil {
		return err
	}
	if notif == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"suppressed": true,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(notif)
}
