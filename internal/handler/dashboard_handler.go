package handler

import (
	"github.com/MechekakYounes/Phones-Store-Management/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	historyService   service.HistoryService
}

func NewDashboardHandler(dashboardService service.DashboardService, historyService service.HistoryService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		historyService:   historyService,
	}
}

// GET /api/dashboard/statistics
func (h *DashboardHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.dashboardService.Statistics()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", stats)
}

// GET /api/history
func (h *DashboardHandler) History(c *fiber.Ctx) error {
	feed, err := h.historyService.Feed()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "", feed)
}
