package service

import (
	"github.com/redis/go-redis/v9"

	"wanderstay-notify/internal/config"
	"wanderstay-notify/internal/realtime"
	"wanderstay-notify/internal/repository"
	"wanderstay-notify/internal/service/email"
	"wanderstay-notify/internal/service/notification"
	"wanderstay-notify/internal/service/preference"
)

type Services struct {
	Notification notification.Service
	Preference   preference.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, registry *realtime.Registry, cfg *config.Config) *Services {
	var emailService email.Service
	if cfg.ResendAPIKey != "" {
		emailService = email.NewService(cfg)
	}

	preferenceService := preference.NewService(repos.User)
	notificationService := notification.NewService(
		repos.Notification,
		repos.User,
		preferenceService,
		registry,
		emailService,
		redisClient,
		cfg,
	)

	return &Services{
		Notification: notificationService,
		Preference:   preferenceService,
		Email:        emailService,
	}
}
