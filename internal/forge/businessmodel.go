package forge

import (
	"fmt"

	"github.com/trigenys/apex-forge/internal/domain"
)

// The business-model builder dispatches on the coarse venture category,
// not the agency archetype: a SaaS and an agency get scored on different
// economics even when both sell software work.
var businessModelSpecializers = map[domain.ProjectCategory]string{
	domain.CategoryAgency: `AGENCY / ESN ADJUSTMENTS:
- Emphasize: target day rate, gross margin, capacity (person-days), scope creep, unpaid invoices.
- Propose 3 offers: Discovery (scoping), Build (delivery), Maintain (support/retainer).
- Add recommended clauses (acceptance, change request, payment, optional SLA).`,
	domain.CategorySaaS: `B2B SAAS ADJUSTMENTS:
- Emphasize: MRR, churn, ARPA, gross margin, CAC payback.
- Propose 3 pricing tiers + limits (seats, usage, features).
- Add: retention loop (activation -> usage -> value -> renewal).`,
	domain.CategoryMarketplace: `MARKETPLACE / MATCHING ADJUSTMENTS:
- Emphasize: liquidity (match rate), wedge strategy (niche), chicken-and-egg.
- Revenue: take rate, premium subscription, listing fees, services.
- Risks: fraud, disintermediation, supply quality.`,
	domain.CategoryInternalTool: `INTERNAL TOOL ADJUSTMENTS:
- Replace "revenue" with "ROI": time saved, errors reduced, risks reduced.
- Include: change management, adoption, 30/90/180-day KPIs.
- Compare build vs buy (total cost of ownership).`,
	domain.CategoryImpact: `IMPACT / NGO ADJUSTMENTS:
- Include: theory of change, impact measurement, funder dependence.
- Hybrid revenue: grants, partnerships, services, sponsoring.
- Governance & transparency: reporting, compliance, reputation.`,
	domain.CategoryUnknown: `UNKNOWN-TYPE ADJUSTMENTS:
- Stick to the minimal structure.
- Ask questions to classify the venture (agency vs SaaS vs marketplace vs internal vs impact).`,
}

const businessModelSkeleton = `MINIMAL STRUCTURE (common to all):
## 0. Assumptions & missing data
- Assumptions (max 7)
- Missing data + questions

## 1. Revenue (how money comes in)
- Offers/prices (max 3)
- Recurring vs one-off
- Upsells & options

## 2. Costs & Burn (how you survive)
- Fixed vs variable
- Monthly burn MIN/LIKELY/MAX
- Break-even (order of magnitude)

## 3. Acquisition / GTM (how you sell)
- 3 priority channels + why
- CAC MIN/LIKELY/MAX
- Sales cycle + minimal pipeline

## 4. Defensible advantage (moat)
- What is durable
- What is copyable + how to protect it

## 5. Verdict
- Score /100 + justification
- Top 5 risks + mitigations`

// BusinessModelInstruction builds the viability-analysis instruction.
func BusinessModelInstruction(p *domain.Project, u *domain.UserProfile, override domain.ProjectCategory) string {
	category := ResolveCategory(override, p)

	return fmt.Sprintf(`You are an expert in Lean Business Design and economic modeling.
Analyze the viability of "%s" in an analytical, cold, profitability-driven style.

%s

%s

%s

%s`,
		orPlaceholder(p.Name),
		projectContext(p, u),
		antiFabricationRules,
		businessModelSpecializers[category],
		businessModelSkeleton,
	)
}
