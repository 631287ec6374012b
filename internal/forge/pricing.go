package forge

import (
	"fmt"

	"github.com/trigenys/apex-forge/internal/domain"
)

// Pricing patterns per archetype: what to package and how to price it.
var pricingSpecializers = map[domain.AgencyType]string{
	domain.AgencyDevESN: `PRICING PATTERNS — DEV/ESN:
- Recommended packs: Discovery (scoping) / Build (delivery) / Maintain (support).
- Units: fixed fee per deliverable + optional day rate for out-of-scope changes.
- Add-ons: SLA, monitoring, security, performance, hosting, 24/7 support.
- Guardrails: mandatory Change Request, acceptance testing, liability limits.`,
	domain.AgencyDataAI: `PRICING PATTERNS — DATA/AI:
- Structure: Implementation (pipeline setup) + "Data Ops" subscription (monitoring/quality).
- Units: connectors, sources, dashboards, models, data volume, refresh frequency.
- Add-ons: MLOps/monitoring, governance, data catalog, training, SLA.
- Risks: data scope drift, source quality. Plan a "Data Readiness Pack".`,
	domain.AgencyCybersecurity: `PRICING PATTERNS — CYBER:
- Structure: Audit/Pentest (one-off) + SOC/Monitoring (recurring) + GRC (recurring).
- Units: perimeter (assets), test windows, depth (black/grey/white box), reports.
- Add-ons: re-test, vulnerability management, runbooks, awareness training.
- Guardrails: rules of engagement, strict perimeter, reinforced confidentiality.`,
	domain.AgencyMarketingComm: `PRICING PATTERNS — MARKETING/COMMS:
- Structure: Setup (strategy + tracking) + Retainer (execution) + media budget (out of scope).
- Units: channels, creative volume, reporting cadence, landing pages, automation.
- Add-ons: shoots, influencers, brand safety, CRO, emailing.
- Guardrails: best-efforts obligation, defined KPIs, account access.`,
	domain.AgencyDesignBranding: `PRICING PATTERNS — DESIGN/BRANDING:
- Structure: UX/Brand audit (one-off) + Redesign/Design System (project) + Design Ops (monthly).
- Units: screens, journeys, components, iteration count, source deliverables.
- Add-ons: accessibility, user testing, guidelines, marketing templates.`,
	domain.AgencyConsultingStrategy: `PRICING PATTERNS — CONSULTING/STRATEGY:
- Structure: Diagnosis (one-off) + Target plan (one-off) + Steering (monthly/PMO).
- Units: workshops, deliverables, org size, complexity, committee cadence.
- Add-ons: training, coaching, implementation, KPIs/OKRs.`,
	domain.AgencyTrainingEdTech: `PRICING PATTERNS — TRAINING/EDTECH:
- Structure: Cohorts (per learner) + B2B (per team) + content subscription (monthly).
- Units: hours, level, projects, mentoring, assessments/certifications.
- Add-ons: placement, hackathons, premium materials, LMS.`,
	domain.AgencyHRRecruiting: `PRICING PATTERNS — HR/RECRUITING:
- Structure: placement fees + sourcing/matching subscription + success fee.
- Units: seniority, scarcity, lead time, hiring volume.
- Add-ons: onboarding, assessment, background checks.`,
	domain.AgencyUnknown: `PRICING PATTERNS — UNKNOWN:
- Propose 2 architectures: (A) fixed project fee + options (B) monthly retainer.
- Require the minimal variables (costs, capacity, target, value created).`,
}

// PricingInstruction builds the offers-and-pricing instruction. This is
// the only builder dispatching on two classifiers at once: archetype and
// revenue-model shape.
func PricingInstruction(p *domain.Project, u *domain.UserProfile, agencyOverride domain.AgencyType, revenueOverride domain.RevenueModelType) string {
	agencyType := ResolveAgencyType(agencyOverride, p)
	revenueModel := ResolveRevenueModel(revenueOverride, p)

	return fmt.Sprintf(`You are a revenue-strategy engineer (B2B/B2C pricing) specialized in offer packaging.
Your mission: produce a directly sellable Offers & Pricing architecture.

PROJECT: %s
COUNTRY: %s
CURRENCY: %s
AGENCY TYPE: %s
REVENUE MODEL: %s

%s
- Internal costs (if known): %s
- Team capacity (days/hours): %s
- Positioning: %s (premium / mid / low-cost)

ANTI-FABRICATION RULES (strict):
- Never invent "market prices" or country statistics that were not provided.
- When you cannot be precise, use numeric RANGES (MIN / LIKELY / MAX) in the requested currency.
- Every figure must be justified (assumptions, unit, target margin).
- Add a section "Assumptions & variables to confirm" (max 10 points).

%s

MANDATORY FORMAT:
- Use only "## " for sections, "### " for subsections.
- Bullet lists with "- " only.
- Include at least 2 comparative Markdown tables:
  1) Packs table (Alpha/Core/Apex): features + limits + price
  2) Add-ons table: item + price + trigger (when it applies)

STRUCTURE TO PRODUCE:

## PSYCHOLOGICAL ANCHORING STRATEGY
### Positioning & promise
- Anchor against the cost of the problem (losses, risks, time, image)
- "Why this is an investment": 3 quantifiable arguments (estimates allowed)
### Pricing policy (rules)
- Discounts (if allowed), terms, late-payment penalties, deposit

## ASSUMPTIONS & VARIABLES TO CONFIRM
- 7 to 10 bullets: costs, volume, scope, lead times, service level, etc.

## PACK ALPHA (entry level)
### Who it is for
### Included
### Limits (anti scope creep)
### Price (MIN/LIKELY/MAX) + unit (per project / per month / per day / per user)

## PACK CORE (80/20 flagship)
### Who it is for
### Included
### Limits
### Price (MIN/LIKELY/MAX) + unit
### Expected ROI (phrased honestly)

## PACK APEX (premium/enterprise)
### Who it is for
### Included (VIP, SLA, governance, security, reporting)
### Limits / prerequisites
### Price (MIN/LIKELY/MAX) + unit

## PACK COMPARISON TABLE
- Provide a clear Markdown table (features as rows, packs as columns)

## ADD-ONS (upsells)
- At least 8 add-ons relevant to the agency type
- Give price + trigger + value

## COMMERCIAL TERMS
- Payment: deposit / milestones / monthly
- Price revision (simple indexation)
- Commitment duration (if retainer/saas)
- Change Request clause (if project)

## MARGIN MECHANICS (simple and honest)
- Estimate delivery cost (hours/days) + target margin
- Formula: Price = Cost / (1 - margin) (show one example)
- Give 3 scenarios (small/medium/large client)

## OBJECTIONS & ANSWERS (sales battlecard)
- 6 typical objections + short, factual, protective answers

CONSTRAINT: the result must be applicable in "%s" using currency "%s", without inventing a "market" that was not provided.`,
		orPlaceholder(p.Name),
		orPlaceholder(p.Country),
		orPlaceholder(p.Currency),
		agencyType,
		revenueModel,
		projectContext(p, u),
		orPlaceholder(p.Costs),
		orPlaceholder(u.Team),
		orPlaceholder(p.Positioning),
		pricingSpecializers[agencyType],
		orPlaceholder(p.Country),
		orPlaceholder(p.Currency),
	)
}
