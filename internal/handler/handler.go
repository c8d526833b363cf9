package handler

import (
	"wanderstay-notify/internal/config"
	"wanderstay-notify/internal/service"
)

type Handlers struct {
	Notification *NotificationHandler
	Preference   *PreferenceHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Notification: NewNotificationHandler(services.Notification, cfg),
		Preference:   NewPreferenceHandler(services.Preference),
	}
}
