package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rcardo11/leadpilot/internal/infra/http/middleware"
	"github.com/rcardo11/leadpilot/internal/usecase"
)

type PaymentHandler struct {
	createUC *usecase.CreatePaymentLinkUseCase
}

func NewPaymentHandler(createUC *usecase.CreatePaymentLinkUseCase) *PaymentHandler {
	return &PaymentHandler{createUC: createUC}
}

func (h *PaymentHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreatePaymentLinkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if input.LeadID == "" || input.PackageID == "" {
		http.Error(w, "lead_id and package are required", http.StatusBadRequest)
		return
	}

	out, err := h.createUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordPaymentLink(out.Processor)
	writeJSON(w, http.StatusOK, out)
}
