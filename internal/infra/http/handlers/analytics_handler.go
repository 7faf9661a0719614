package handlers

import (
	"net/http"

	"github.com/rcardo11/leadpilot/internal/usecase"
)

type AnalyticsHandler struct {
	analyticsUC *usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(analyticsUC *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUC: analyticsUC}
}

func (h *AnalyticsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
