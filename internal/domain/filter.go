package domain

// PriceRange is an inclusive monthly-price window in dollars.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterQuery is the structured result of extracting search constraints from a
// free-text question. Every field is optional: an absent field means "no
// constraint". It is transient output, never persisted.
type FilterQuery struct {
	Type         string      `json:"type,omitempty"`
	Region       string      `json:"region,omitempty"`
	Term         string      `json:"term,omitempty"`
	PriceRange   *PriceRange `json:"priceRange,omitempty"`
	MinRating    float64     `json:"minRating,omitempty"`
	Benefits     []string    `json:"benefits,omitempty"`
	CashbackOnly bool        `json:"cashbackOnly,omitempty"`
}

// IsZero reports whether no constraint was extracted.
func (f FilterQuery) IsZero() bool {
	return f.Type == "" && f.Region == "" && f.Term == "" &&
		f.PriceRange == nil && f.MinRating == 0 &&
		len(f.Benefits) == 0 && !f.CashbackOnly
}

// Fixed filter taxonomy. The extraction prompt enumerates exactly these
// values, so the taxonomy and the prompt cannot drift apart.
var (
	PlanTypes = []string{"All", "Health", "Life", "Auto", "Home", "Travel"}
	Regions   = []string{"All", "ON", "BC", "AB", "MB", "QC", "NS", "NB"}
	Terms     = []string{"All", "1 year", "5 years", "1 month"}

	BenefitTags = []string{
		"Prescription Coverage", "Emergency Services", "Accidental Death", "Terminal Illness",
		"Third-Party Liability", "Accident Benefits", "Vehicle Damage", "Theft Protection",
		"Collision Damage", "Family Discounts", "Collision", "Theft", "Liability", "Dental", "Vision",
		"Fire Protection", "Theft Coverage", "Natural Disasters", "Accident Coverage", "Critical Illness",
		"Family Package", "Fire", "Medical Emergencies", "Trip Cancellation", "Lost Luggage",
		"Medical", "Baggage Loss", "Water Damage", "Family Discount", "Only Cashback",
	}
)

// Numeric bounds for the taxonomy's range filters.
const (
	PriceRangeMin = 0
	PriceRangeMax = 500
	RatingMin     = 0
	RatingMax     = 5
)
