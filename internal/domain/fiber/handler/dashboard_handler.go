package handler

import (
	"time"

	"github.com/dhealy/applytrack/internal/usecase"
	"github.com/dhealy/applytrack/internal/util"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboard *usecase.DashboardUsecase
}

func NewDashboardHandler(dashboard *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/dashboard/stats", h.Stats)
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(time.Now())
	if err != nil {
		return util.FromError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "dashboard stats",
		Data:    stats,
	})
}
