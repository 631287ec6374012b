package forge

import (
	"fmt"

	"github.com/trigenys/apex-forge/internal/domain"
)

// SOW specializations: deliverables, acceptance criteria, and the
// typical exclusions for each archetype.
var sowSpecializers = map[domain.AgencyType]string{
	domain.AgencyDevESN: `SPECIFICS — DEV/ESN:
- Include: environments (dev/stage/prod), CI/CD (if planned), repo, documentation, handover.
- Acceptance criteria: minimum tests (unit/int/e2e), code review, demo, acceptance report.
- Exclusions: unlimited support, "free small tweaks", scope change without CR.
- Add: Change Request (CR) procedure + bug vs evolution classification.`,
	domain.AgencyDataAI: `SPECIFICS — DATA/AI:
- Include: data sources, connectors, transformations, dashboards/models, monitoring.
- Criteria: quality (error rate), refresh latency, reproducibility, data lineage, access.
- Exclusions: fixing source data outside our control, AI promises without data readiness.
- Add: "Data Readiness" phase + dataset availability conditions.`,
	domain.AgencyCybersecurity: `SPECIFICS — CYBERSECURITY:
- Include: rules of engagement (RoE), perimeter (assets), windows, depth (black/grey/white).
- Deliverables: exec report + tech report + evidence + remediation plan + re-test (option).
- Criteria: perimeter coverage, severity classification, actionable recommendations.
- Exclusions: out-of-perimeter actions, destructive exploitation, publication without consent.`,
	domain.AgencyMarketingComm: `SPECIFICS — MARKETING/COMMS:
- Include: tracking setup, creative planning, content volume, channels, reporting.
- Criteria: deliverables shipped on time + defined KPIs (no outcome guarantee unless contracted).
- Exclusions: media budget (out of scope), missing account access, late validation.`,
	domain.AgencyDesignBranding: `SPECIFICS — DESIGN/BRANDING:
- Include: Figma deliverables, design system (if planned), iteration count, handoff.
- Criteria: mockup validation, accessibility checklist, exported assets.
- Exclusions: unlimited iterations, scope redesign without CR, dev integration unless included.`,
	domain.AgencyConsultingStrategy: `SPECIFICS — CONSULTING/STRATEGY:
- Include: workshops, decision deliverables, roadmap, governance, handover.
- Criteria: deliverables validated in committee + decisions recorded.
- Exclusions: operational execution unless included, insufficient client availability.`,
	domain.AgencyTrainingEdTech: `SPECIFICS — TRAINING/EDTECH:
- Include: program, duration, materials, assessments, attendance, capstone project.
- Criteria: sessions held, materials delivered, assessments completed, attestation if planned.
- Exclusions: job guarantee, unlimited coaching beyond the package.`,
	domain.AgencyHRRecruiting: `SPECIFICS — HR/RECRUITING:
- Include: role perimeter, qualification process, shortlist, lead times, confidentiality.
- Criteria: number of profiles submitted, lead time, client feedback, validation step.
- Exclusions: absolute hiring guarantee, lead times without client feedback.`,
	domain.AgencyUnknown: `SPECIFICS — UNKNOWN:
- Add an "Information to confirm" section (max 10 points) before freezing scope/price.`,
}

// SOWInstruction builds the signature-ready Statement of Work
// instruction.
func SOWInstruction(p *domain.Project, u *domain.UserProfile, override domain.AgencyType) string {
	agencyType := ResolveAgencyType(override, p)
	provider := orPlaceholder(firstNonEmpty(u.FullName, u.Name))

	return fmt.Sprintf(`You are a rigorous Project Manager. Write a contractual "Statement of Work" (SOW), ready for signature.
STYLE: precise, surgical, zero ambiguity.

PROJECT: %s
COUNTRY: %s
CURRENCY: %s
CLIENT: %s
PROVIDER: %s

CONTEXT (source of truth):
- Objective: %s
- Offer / services: %s
- Functional scope: %s
- Timeline / key dates: %s
- Constraints: %s
- Budget / pricing: %s
- Assumptions: %s

DETECTED AGENCY TYPE: %s
%s

ANTI-FABRICATION RULES:
- Do not invent missing information: write "%s" in the right place.
- No storytelling: contractual content only.
- Include 2 mandatory Markdown tables:
  (1) "Phases & Deliverables" table
  (2) "RACI" table (Client / Provider)

STRICT FORMAT:
- Use only "## " for sections, "### " for subsections.
- Lists: "- " only.
- No sections outside the structure.

STRUCTURE TO PRODUCE:

## DOCUMENT IDENTIFICATION
### Parties
- Client: %s
- Provider: %s
### Reference & dates
- Reference: %s
- Effective date: %s
- Duration: %s

## MISSION OBJECTIVE
- Describe the measurable objective and the expected outcome.

## MISSION SCOPE
### Deliverables (exhaustive)
- List concrete, verifiable deliverables.
### Quality requirements
- Tests / validation / standards (per agency type).
### Service limits
- Hours, channels, volumes, iteration count, etc.

## CRITICAL EXCLUSIONS (ANTI SCOPE CREEP)
- Strict list of what is not included.
- State explicitly: "Anything not listed in the scope is out of perimeter and subject to a Change Request."

## DEPLOYMENT PLAN (PHASES & MILESTONES)
### Phases & Deliverables table (mandatory)
- Markdown table: Phase | Duration | Deliverables | Acceptance criteria | Dependencies
### Project governance
- Kickoff, weekly, demo, acceptance, official communication channel.

## ACCEPTANCE CRITERIA
### General rules
- How a phase is accepted (report, email validation, max feedback delay).
### Per-deliverable criteria
- Give 6-12 concrete criteria (e.g. "tests passing", "docs delivered", "demo validated").

## SHARED RESPONSIBILITIES
### Client responsibilities
- Access, data, contacts, validations, equipment, environments, media budget (if applicable), etc.
### Provider responsibilities
- Execution, quality, reporting, security, confidentiality.

## RACI TABLE (mandatory)
- Markdown table: Activity | Client | Provider | Comment

## CHANGE MANAGEMENT (CHANGE REQUEST)
- Define the procedure: request -> estimate -> validation -> execution
- Define: cost/time impact, and bug vs evolution classification if applicable.

## RISKS & DEPENDENCIES
- 5 risks max + mitigation measures.
- 5 dependencies max + impact.

## COMMERCIAL TERMS (if applicable)
- Price: %s
- Payment: deposit / milestones / monthly
- Late payment: penalties (%s per policy)
- Suspension: conditions

## CONFIDENTIALITY & INTELLECTUAL PROPERTY
- Confidentiality (NDA if applicable).
- IP: deliverables, sources, licenses, usage rights.

## SIGNATURES
- Client: name / title / date / signature
- Provider: %s / date / signature`,
		orPlaceholder(p.Name),
		orPlaceholder(p.Country),
		orPlaceholder(p.Currency),
		orPlaceholder(p.ClientName),
		provider,
		orPlaceholder(p.MainGoal),
		orPlaceholder(p.Offer),
		orPlaceholder(p.Scope),
		orPlaceholder(p.Timeline),
		orPlaceholder(p.Constraints),
		orPlaceholder(p.Pricing),
		orPlaceholder(p.Assumptions),
		agencyType,
		sowSpecializers[agencyType],
		Placeholder,
		Placeholder,
		provider,
		Placeholder,
		Placeholder,
		Placeholder,
		Placeholder,
		Placeholder,
		provider,
	)
}
