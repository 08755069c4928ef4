package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/insurehub/insurehub/internal/advisor"
	"github.com/insurehub/insurehub/internal/domain"
)

// AdvisorHandler serves the question pipelines
type AdvisorHandler struct {
	advisor *advisor.Service
}

// NewAdvisorHandler creates a new advisor handler
func NewAdvisorHandler(svc *advisor.Service) *AdvisorHandler {
	return &AdvisorHandler{advisor: svc}
}

// QueryRequest is the request body for the contextual Q&A endpoint
type QueryRequest struct {
	Query string `json:"query"`
}

// AskRequest is the request body for the filter-extraction endpoint
type AskRequest struct {
	Question string `json:"question"`
}

// QueryResponse is the contextual answer payload
type QueryResponse struct {
	Answer         string                 `json:"answer"`
	PurchasedPlans []domain.PurchasedPlan `json:"purchasedPlans"`
}

// Query answers a question grounded in the authenticated user's purchased
// plans.
func (h *AdvisorHandler) Query(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.advisor.Answer(r.Context(), userID, req.Query)
	if errors.Is(err, domain.ErrInvalidInput) {
		jsonError(w, http.StatusBadRequest, "query text is required")
		return
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		slog.Error("contextual answer failed",
			"error", err,
			"user_id", userID,
		)
		jsonError(w, http.StatusInternalServerError, "failed to answer question")
		return
	}

	plans := answer.Plans
	if plans == nil {
		plans = []domain.PurchasedPlan{}
	}

	jsonResponse(w, http.StatusOK, QueryResponse{
		Answer:         answer.Text,
		PurchasedPlans: plans,
	})
}

// Ask extracts catalog filters from a free-text question. Output that does
// not parse as filters comes back as an empty object, never an error.
func (h *AdvisorHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filters, err := h.advisor.ExtractFilters(r.Context(), req.Question)
	if errors.Is(err, domain.ErrInvalidInput) {
		jsonError(w, http.StatusBadRequest, "question is required")
		return
	}
	if err != nil {
		slog.Error("filter extraction failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to extract filters")
		return
	}

	jsonResponse(w, http.StatusOK, filters)
}
