package handler

import (
	"github.com/gofiber/fiber/v2"

	"wanderstay-notify/internal/domain"
	"wanderstay-notify/internal/middleware"
	"wanderstay-notify/internal/service/preference"
)

type PreferenceHandler struct {
	prefService preference.Service
}

func NewPreferenceHandler(prefService preference.Service) *PreferenceHandler {
	return &PreferenceHandler{prefService: prefService}
}

func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	prefs, err := h.prefService.Get(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"preferences": prefs,
	})
}

func (h *PreferenceHandler) Update(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdatePreferencesInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.Preferences) == 0 {
		return middleware.BadRequest("No preferences provided")
	}

	prefs, err := h.prefService.Update(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"preferences": prefs,
	})
}
