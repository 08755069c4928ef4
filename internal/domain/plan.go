package domain

// Plan is a catalog entry describing an insurance product.
type Plan struct {
	ID       int      `json:"id" yaml:"id"`
	Provider string   `json:"provider" yaml:"provider"`
	Type     string   `json:"type" yaml:"type"`
	Price    float64  `json:"price" yaml:"price"`
	Coverage string   `json:"coverage" yaml:"coverage"`
	Region   string   `json:"region" yaml:"region"`
	Rating   float64  `json:"rating" yaml:"rating"`
	Term     string   `json:"term" yaml:"term"`
	Benefits []string `json:"benefits" yaml:"benefits"`
	Cashback float64  `json:"cashback" yaml:"cashback"`
	Icon     string   `json:"icon,omitempty" yaml:"icon"`
	URL      string   `json:"url,omitempty" yaml:"url"`
}

// PurchasedPlan is a point-in-time snapshot of a Plan taken when a user buys
// it. Once appended to a user's history it is never rewritten, so later
// catalog changes do not affect recorded purchases.
type PurchasedPlan Plan

// IsEmpty reports whether the snapshot carries no identifying content.
// Used to reject purchase requests with a missing or empty payload.
func (p PurchasedPlan) IsEmpty() bool {
	return p.Provider == "" && p.Type == "" && p.Price == 0
}
