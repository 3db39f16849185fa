package handler

import (
	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/dto"
	"github.com/dhealy/applytrack/internal/usecase"
	"github.com/dhealy/applytrack/internal/util"
	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settings *usecase.SettingsUsecase
}

func NewSettingsHandler(settings *usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/settings", h.All)
	api.Post("/settings", h.Upsert)
}

func (h *SettingsHandler) All(c *fiber.Ctx) error {
	settings, err := h.settings.All()
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "settings listed",
		Data:    settings,
	})
}

func (h *SettingsHandler) Upsert(c *fiber.Ctx) error {
	var req dto.SettingUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return util.FromError(c, &apperror.ValidationError{Message: "invalid request body"})
	}
	if err := h.settings.Upsert(req.Key, req.Value); err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "setting saved",
		Data:    fiber.Map{"key": req.Key},
	})
}
