package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rcardo11/leadpilot/internal/entity"
	"github.com/rcardo11/leadpilot/internal/usecase"
)

type LeadHandler struct {
	leadRepo    usecase.LeadRepositoryInterface
	searchUC    *usecase.SearchLeadsUseCase
	rateLimiter *RateLimiter
}

func NewLeadHandler(leadRepo usecase.LeadRepositoryInterface, searchUC *usecase.SearchLeadsUseCase) *LeadHandler {
	return &LeadHandler{
		leadRepo:    leadRepo,
		searchUC:    searchUC,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

type CaptureLeadRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Country   string `json:"country"`
	Industry  string `json:"industry,omitempty"`
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// Capture registers a single lead by hand, bypassing discovery. The public
// form posts here, hence the rate limit.
func (h *LeadHandler) Capture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req CaptureLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	lead, err := entity.NewLead(req.FirstName, req.LastName, req.Email, req.Country)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Email is required",
		})
		return
	}
	lead.Phone = req.Phone
	lead.Company = req.Company
	lead.Industry = req.Industry
	lead.Source = "Manual"

	if err := h.leadRepo.Upsert(ctx, lead); err != nil {
		writeJSON(w, http.StatusInternalServerError, CaptureLeadResponse{
			Success: false,
			Message: "Failed to capture lead",
		})
		return
	}

	writeJSON(w, http.StatusOK, CaptureLeadResponse{Success: true, ID: lead.ID})
}

// Search runs a discovery query against the enrichment API and stores what
// comes back.
func (h *LeadHandler) Search(w http.ResponseWriter, r *http.Request) {
	var input usecase.SearchLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	out, err := h.searchUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// List returns every lead in the store, newest first.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadRepo.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list leads", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total": len(leads),
		"leads": leads,
	})
}

type UpdateLeadRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// Update applies a manual status change from the dashboard. Campaign state
// (stage, counters, timers) is owned by the use cases and not touched here.
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.Status == "" {
		http.Error(w, "id and status are required", http.StatusBadRequest)
		return
	}

	if err := h.leadRepo.UpdateStatus(r.Context(), req.ID, req.Status, req.Note); err != nil {
		if err == entity.ErrLeadNotFound {
			http.Error(w, "Lead not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
