// Package catalog holds the static insurance-plan catalog. The catalog is
// read-only after load; purchases record snapshots of plans, never references
// into it.
package catalog

import (
	"github.com/insurehub/insurehub/internal/domain"
)

// Catalog is an in-memory, read-only plan listing with id lookup.
type Catalog struct {
	plans []domain.Plan
	byID  map[int]domain.Plan
}

// New builds a catalog from the given plans.
func New(plans []domain.Plan) *Catalog {
	byID := make(map[int]domain.Plan, len(plans))
	for _, p := range plans {
		byID[p.ID] = p
	}
	return &Catalog{plans: plans, byID: byID}
}

// List returns all plans in catalog order.
func (c *Catalog) List() []domain.Plan {
	out := make([]domain.Plan, len(c.plans))
	copy(out, c.plans)
	return out
}

// Get returns the plan with the given id, or domain.ErrPlanNotFound.
func (c *Catalog) Get(id int) (domain.Plan, error) {
	plan, ok := c.byID[id]
	if !ok {
		return domain.Plan{}, domain.ErrPlanNotFound
	}
	return plan, nil
}

// Len returns the number of plans in the catalog.
func (c *Catalog) Len() int {
	return len(c.plans)
}
