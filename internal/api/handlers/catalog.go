package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/insurehub/insurehub/internal/catalog"
	"github.com/insurehub/insurehub/internal/domain"
)

// CatalogHandler serves the static plan catalog
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// List returns the full catalog
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.catalog.List())
}

// Get returns a single plan by id
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "plan not found")
		return
	}

	plan, err := h.catalog.Get(id)
	if errors.Is(err, domain.ErrPlanNotFound) {
		jsonError(w, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load plan")
		return
	}

	jsonResponse(w, http.StatusOK, plan)
}
