package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/insurehub/insurehub/internal/domain"
)

// Prompt assembly limits. A user with a very large purchase history must not
// produce an unbounded grounding prompt, so the context is capped by both
// plan count and serialized size; the newest purchases win.
const (
	maxContextPlans = 20
	maxContextBytes = 16 * 1024
)

// Prompter builds the system prompts for both pipelines.
type Prompter struct{}

// NewPrompter creates a new prompter
func NewPrompter() *Prompter {
	return &Prompter{}
}

// GroundingPrompt builds the support-agent instruction with the user's
// purchased plans embedded as structured context.
func (p *Prompter) GroundingPrompt(plans []domain.PurchasedPlan) string {
	kept, omitted := boundPlans(plans)

	serialized, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		// PurchasedPlan contains only marshalable fields; treat this as
		// an empty history rather than failing the pipeline.
		serialized = []byte("[]")
	}

	var sb strings.Builder
	sb.WriteString(`You are an AI insurance assistant.
The user will provide a question, and you also have access to their purchased insurance plans.
Your task is to analyze the user's query in the context of their purchased plans
and return a helpful, conversational answer.

User's purchased plans:
`)
	sb.Write(serialized)
	if omitted > 0 {
		fmt.Fprintf(&sb, "\n(%d older plans omitted)", omitted)
	}
	sb.WriteString(`

Important:
- Answer as if you are a customer support agent.
- Refer directly to their purchased plans when relevant.
- Keep responses concise but clear.`)

	return sb.String()
}

// boundPlans selects the newest plans that fit within the context limits and
// reports how many older ones were dropped.
func boundPlans(plans []domain.PurchasedPlan) ([]domain.PurchasedPlan, int) {
	var (
		kept []domain.PurchasedPlan
		size int
	)
	for i := len(plans) - 1; i >= 0; i-- {
		encoded, err := json.Marshal(plans[i])
		if err != nil {
			continue
		}
		if len(kept) == maxContextPlans || size+len(encoded) > maxContextBytes {
			break
		}
		kept = append([]domain.PurchasedPlan{plans[i]}, kept...)
		size += len(encoded)
	}
	if kept == nil {
		kept = []domain.PurchasedPlan{}
	}
	return kept, len(plans) - len(kept)
}

// FilterPrompt builds the taxonomy-constrained extraction instruction. The
// enumerations come straight from the domain taxonomy so prompt and parser
// always agree.
func (p *Prompter) FilterPrompt() string {
	var sb strings.Builder
	sb.WriteString(`You are an AI agent for insurance, replacing human agents.
Your job is to read user queries and return relevant filters to help them find insurance plans.

Available filters:
`)
	fmt.Fprintf(&sb, "Types: %s\n", strings.Join(domain.PlanTypes, ", "))
	fmt.Fprintf(&sb, "Regions: %s\n", strings.Join(domain.Regions, ", "))
	fmt.Fprintf(&sb, "Terms: %s\n", strings.Join(domain.Terms, ", "))
	fmt.Fprintf(&sb, "Price Range: $%d - $%d\n", domain.PriceRangeMin, domain.PriceRangeMax)
	fmt.Fprintf(&sb, "Rating: %d - %d (decimals allowed)\n", domain.RatingMin, domain.RatingMax)
	fmt.Fprintf(&sb, "Benefits: %s\n", strings.Join(domain.BenefitTags, ", "))
	sb.WriteString(`
Return ONLY a JSON object with keys: type, region, term, priceRange, minRating, benefits (array), cashbackOnly (boolean). Do NOT return text or explanation.`)

	return sb.String()
}
