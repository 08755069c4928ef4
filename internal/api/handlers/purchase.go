package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/insurehub/insurehub/internal/domain"
	"github.com/insurehub/insurehub/internal/purchase"
)

// PurchaseHandler records plan purchases
type PurchaseHandler struct {
	purchases *purchase.Service
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchases *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// BuyRequest is the request body for a purchase
type BuyRequest struct {
	PlanID   int                  `json:"planId"`
	PlanData domain.PurchasedPlan `json:"planData"`
}

// Buy records a plan purchase for the authenticated user.
func (h *PurchaseHandler) Buy(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.purchases.Buy(r.Context(), userID, req.PlanID, req.PlanData)
	if errors.Is(err, domain.ErrInvalidInput) {
		jsonError(w, http.StatusBadRequest, "planId and planData are required")
		return
	}
	if err != nil {
		slog.Error("purchase failed",
			"error", err,
			"user_id", userID,
			"plan_id", req.PlanID,
		)
		jsonError(w, http.StatusInternalServerError, "failed to record purchase")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
