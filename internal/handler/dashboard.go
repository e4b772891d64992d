package handler

import (
	"net/http"

	"github.com/acff/debt-engine/internal/service"
	"github.com/acff/debt-engine/pkg/response"
)

type DashboardHandler struct {
	service *service.PortfolioService
}

func NewDashboardHandler(service *service.PortfolioService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Report handles GET /users/{userId}/dashboard
func (h *DashboardHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		response.BadRequest(w, "Invalid user id", err)
		return
	}

	report, err := h.service.Report(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, report)
}
