package forge

import (
	"fmt"
	"time"

	"github.com/trigenys/apex-forge/internal/domain"
)

// What actually changes in a proposal per archetype: scoping ritual,
// deliverables, protective clauses.
var proposalSpecializers = map[domain.AgencyType]string{
	domain.AgencyDevESN: `SPECIALIZATION — DEV/ESN:
- Emphasize: scoping (Discovery), delivery (Build), stabilization (Run), maintenance/SLA.
- Include: acceptance criteria, Change Request (CR) process, bug vs evolution arbitration.
- Add: RACI matrix (Client vs Provider) and a razor-sharp IN/OUT scope.`,
	domain.AgencyDataAI: `SPECIALIZATION — DATA/AI:
- Add a "Data Readiness Pack" (source quality audit) before promising dashboards/AI.
- Include: governance (data lineage, access), dataset security, optional DPA for personal data.
- Define: units (sources, connectors, refresh frequency, volume, number of dashboards/models).`,
	domain.AgencyCybersecurity: `SPECIALIZATION — CYBERSECURITY:
- Include: Rules of Engagement (RoE), strict perimeter, test windows, "do no harm" clause.
- Deliverables: executive report + technical report + remediation plan + re-test (option).
- Define: depth (black/grey/white box), covered assets, severity criteria.`,
	domain.AgencyMarketingComm: `SPECIALIZATION — MARKETING/COMMS:
- Separate clearly: agency fees vs media budget (out of scope).
- Include: KPIs, reporting cadence, test-and-learn process, brand safety.
- Deliverables: editorial calendar, creatives, tracking, landing pages (if included).`,
	domain.AgencyDesignBranding: `SPECIALIZATION — DESIGN/BRANDING:
- Include: iteration count, source deliverables (Figma), usage rights, accessibility.
- Deliverables: design system (if included), guidelines, exported assets, dev handoff.`,
	domain.AgencyConsultingStrategy: `SPECIALIZATION — CONSULTING/STRATEGY:
- Emphasize: diagnosis -> target -> plan -> steering -> handover.
- Add: assumptions, limits, decision deliverables (not just slides), committee governance.`,
	domain.AgencyTrainingEdTech: `SPECIALIZATION — TRAINING/EDTECH:
- Include: format (cohorts), prerequisites, assessment, materials, capstone project, post-training follow-up.
- Deliverables: materials + replays (if allowed) + attestation (if applicable).`,
	domain.AgencyHRRecruiting: `SPECIALIZATION — HR/RECRUITING:
- Include: sourcing/qualification process, lead times, candidate confidentiality, non-discrimination.
- Model: fee, success fee, subscription, replacement guarantee (if planned).`,
	domain.AgencyUnknown: `SPECIALIZATION — UNKNOWN:
- Stay generic, and add a tightly focused "Information to confirm" section.`,
}

// ProposalInstruction builds the commercial-proposal template
// instruction.
func ProposalInstruction(p *domain.Project, u *domain.UserProfile, override domain.AgencyType, now time.Time) string {
	agencyType := ResolveAgencyType(override, p)
	signatory := orPlaceholder(firstNonEmpty(u.FullName, u.Name))

	return fmt.Sprintf(`You are a senior business engineer. Write an institutional Commercial Proposal template.
TARGET: a potential strategic client for %s.

CONTEXT (source of truth):
- Project: %s
- Country: %s
- Currency: %s
- Offer / services: %s
- ICP / client profile: %s
- Customer problem: %s
- Value created: %s
- Differentiation: %s
- Desired timeline: %s
- Known assumptions: %s
- Client-side contact: %s
- Provider-side signatory: %s

DETECTED AGENCY TYPE: %s
%s

ANTI-FABRICATION RULES:
- Never invent figures (prices, ROI, market shares). When missing: "%s".
- No vague claims like "the only viable solution" without justification: replace with 3 concrete proofs.
- Document must fit roughly 2 to 4 pages (professional density, not a novel).

FORMATTING RULES (strict):
- Only "## " for sections, "### " for subsections.
- Bullet lists: "- " only.
- Include exactly 2 Markdown tables:
  1) Schedule (phases/milestones)
  2) Investment (packs or budget lines)

STRUCTURE TO PRODUCE:

## COVER PAGE
### Title
- "Commercial Proposal — %s"
### Metadata
- Reference: %s
- Date: %s
- Client: %s
- Issuer: %s

## UNDERSTANDING YOUR STAKES
### Observation
- Restate the pain in business language
### Impacts
- Time, money, risks, image (without inventing: use "%s" when needed)
### Objective
- What the client concretely wants to obtain

## STRATEGIC SOLUTION
### Approach
- 3 to 6 bullets: method + why it works
### Scope
- IN: 5-10 bullets
- OUT: 5 bullets (anti scope creep)
### Deliverables
- 6-12 concrete, verifiable deliverables
### Assumptions & prerequisites
- Access, contacts, data, validations, equipment, etc.

## DEPLOYMENT SCHEDULE
### Phases & milestones
- Provide a Markdown table: Phase | Duration | Deliverables | Acceptance criterion
### Project governance
- Rituals (kickoff, weekly, demo, acceptance)
- Simplified RACI (Client vs Provider)

## INVESTMENT AND TERMS
### Price structure
- Packs or lines (per model) + what each includes
### Investment table
- Markdown table: Item/PACK | Included | Price | Payment terms
### Commercial terms
- Deposit: %s
- Payment: milestones / monthly
- Validations: client response deadlines
- Change Request: mandatory for anything out of scope

## RISKS & CONTROL MEASURES
### Risks
- 5 risks max (scope, data, access, delays, dependencies)
### Countermeasures
- 1 pragmatic countermeasure per risk

## WHY US
### Differentiation
- 5 bullets: proofs, process, assets, quality
### References / proof
- Portfolio / cases / demos: %s

## NEXT STEPS
- 1) Scope validation (date)
- 2) Kickoff (date)
- 3) Launch (date)
- CTA: propose 2 call slots (30-45 min)

## SIGNATURES
- For the Client: name / title / date / signature
- For %s: %s / date / signature`,
		orPlaceholder(p.Name),
		orPlaceholder(p.Name),
		orPlaceholder(p.Country),
		orPlaceholder(p.Currency),
		orPlaceholder(p.Offer),
		orPlaceholder(p.ICP),
		orPlaceholder(p.Problem),
		orPlaceholder(p.Value),
		orPlaceholder(p.Differentiation),
		orPlaceholder(p.Timeline),
		orPlaceholder(p.Assumptions),
		orPlaceholder(p.ClientContact),
		signatory,
		agencyType,
		proposalSpecializers[agencyType],
		Placeholder,
		orPlaceholder(p.Name),
		Placeholder,
		issueDate(now),
		Placeholder,
		signatory,
		Placeholder,
		Placeholder,
		Placeholder,
		orPlaceholder(p.Name),
		signatory,
	)
}
