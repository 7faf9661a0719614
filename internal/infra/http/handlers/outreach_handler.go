package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rcardo11/leadpilot/internal/usecase"
)

// OutreachHandler exposes the two campaign triggers: start for a batch of
// leads and tick for the follow-up sweep. The tick is driven from outside
// (cron, a scheduler pod) so this process holds no timers of its own.
type OutreachHandler struct {
	startUC *usecase.StartCampaignUseCase
	tickUC  *usecase.FollowUpTickUseCase
}

func NewOutreachHandler(startUC *usecase.StartCampaignUseCase, tickUC *usecase.FollowUpTickUseCase) *OutreachHandler {
	return &OutreachHandler{startUC: startUC, tickUC: tickUC}
}

type StartCampaignRequest struct {
	LeadIDs []string `json:"lead_ids"`
}

func (h *OutreachHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.LeadIDs) == 0 {
		http.Error(w, "lead_ids is required", http.StatusBadRequest)
		return
	}

	result, err := h.startUC.Execute(r.Context(), req.LeadIDs)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *OutreachHandler) Tick(w http.ResponseWriter, r *http.Request) {
	result, err := h.tickUC.Execute(r.Context(), time.Now())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
