package forge

import (
	"fmt"
	"time"

	"github.com/trigenys/apex-forge/internal/domain"
)

// Archetype modules for the one-pager: the angles each kind of agency
// must cover in its executive summary.
var onePagerSpecializers = map[domain.AgencyType]string{
	domain.AgencyDevESN: `DEV/ESN AGENCY ANGLES (weave into the sections):
- Market fracture: delays, quality, technical debt, hidden costs, lack of delivery discipline.
- Thesis: margin through packaging (Discovery/Build/Maintain), recurrence via retainer/SLA, standardization.
- Moats: delivery playbooks, QA gates, reusable components, execution speed, proof (portfolio).
- Architecture: process + stack + governance + security by default.`,
	domain.AgencyDataAI: `DATA/AI AGENCY ANGLES:
- Fracture: decisions without reliable data, silos, slow reporting, cost of errors.
- Thesis: ROI gains (time, fraud/errors, performance), MRR via data ops/monitoring, AI upsell.
- Moats: data governance, robust pipelines, quality + traceability, domain expertise, security.
- Architecture: ingestion, transformation, BI/AI, monitoring, adoption.`,
	domain.AgencyCybersecurity: `CYBERSECURITY AGENCY ANGLES:
- Fracture: rising risk, low maturity, client/partner requirements, costly incidents.
- Thesis: recurring revenue (SOC, audits, GRC), value = risk reduction + compliance.
- Moats: methodology, rules of engagement, tooling, credibility, evidence process, confidentiality.
- Architecture: prevention, detection, response, improvement (SOPs/runbooks).`,
	domain.AgencyMarketingComm: `MARKETING/COMMS AGENCY ANGLES:
- Fracture: exploding CAC, unstable tracking, generic content, weak conversion.
- Thesis: performance (ROAS, qualified leads), recurrence (retainer), differentiation through data and brand safety.
- Moats: creative + data framework, test-and-learn process, asset ownership, vertical expertise.
- Architecture: strategy, creation, distribution, measurement, iteration.`,
	domain.AgencyDesignBranding: `DESIGN/BRANDING AGENCY ANGLES:
- Fracture: neglected user experience, brand inconsistency, weak conversion.
- Thesis: measurable impact (conversion, adoption, reduced support), recurrence via design ops.
- Moats: design system, UX quality, accessibility, methodology, prototyping speed.
- Architecture: research, design system, delivery, UX QA.`,
	domain.AgencyConsultingStrategy: `CONSULTING/STRATEGY AGENCY ANGLES:
- Fracture: slow organizations, unmastered processes, decisions without governance.
- Thesis: value = cost/delay reduction + better execution, recurrence via PMO/ops.
- Moats: frameworks, governance, alignment capacity, delivery of applicable decisions.
- Architecture: diagnosis, target design, plan, steering, handover.`,
	domain.AgencyTrainingEdTech: `TRAINING/EDTECH AGENCY ANGLES:
- Fracture: skills gap, theory-heavy courses, weak employability.
- Thesis: revenue from cohorts + B2B, recurrence via content subscriptions + coaching.
- Moats: project-based pedagogy, proprietary content, assessment, community, partnerships.
- Architecture: curriculum, projects, assessment, certification/portfolio.`,
	domain.AgencyHRRecruiting: `HR/RECRUITING AGENCY ANGLES:
- Fracture: talent shortage, slow hiring, poor matching, churn.
- Thesis: fees + subscriptions, value = reduced time-to-hire + matching quality.
- Moats: network, process, scoring, compliance, candidate experience.
- Architecture: sourcing, qualification, matching, follow-up.`,
	domain.AgencyUnknown: `UNKNOWN-TYPE ANGLES:
- Stay generic and add targeted "` + Placeholder + `" markers (target, offer, model, differentiation, proof).`,
}

// OnePagerInstruction builds the generation instruction for the concept
// one-pager. An empty override means "resolve from the project".
func OnePagerInstruction(p *domain.Project, u *domain.UserProfile, override domain.AgencyType, now time.Time) string {
	agencyType := ResolveAgencyType(override, p)

	return fmt.Sprintf(`You are a senior strategy partner. Write an institutional "Concept One-Pager" at executive-summary grade.

ISSUE DATE: %s (use this exact date in the document)
PROJECT: %s
COUNTRY: %s
VISION: %s

%s

AGENCY TYPE: %s
%s

ANTI-FABRICATION RULES:
- Do not invent facts (figures, laws, market shares). When information is missing, write "%s".
- No storytelling. No marketing. Incisive tone, no frills.
- "ONE-PAGER" target: roughly 450 to 650 words.

%s

STRUCTURE TO FOLLOW:

## STRATEGIC RATIONALE
### Market fracture in %s
### Why now
### What happens if nothing is done

## INVESTMENT THESIS
### Profitability levers (unit economics)
### Barriers to entry
### Defensible competitive advantage

## SOLUTION ARCHITECTURE
### How the solution works
### What concretely changes for the client (before/after)
### Major risks and mitigations (3 max)

## OPERATIONAL ROADMAP
### Milestone 1 (Month 3): Core infrastructure
### Milestone 2 (Month 6): Acquisition / Delivery
### Milestone 3 (Month 12): Break-even and scale
### Points to clarify (if needed)

STYLE: incisive, executive-summary grade.`,
		issueDate(now),
		orPlaceholder(p.Name),
		orPlaceholder(p.Country),
		orPlaceholder(p.MainGoal),
		projectContext(p, u),
		agencyType,
		onePagerSpecializers[agencyType],
		Placeholder,
		formattingRules,
		orPlaceholder(p.Country),
	)
}
