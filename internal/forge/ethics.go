package forge

import (
	"fmt"

	"github.com/trigenys/apex-forge/internal/domain"
)

// Ethics-charter clause modules per archetype.
var ethicsSpecializers = map[domain.AgencyType]string{
	domain.AgencyDevESN: `SPECIFIC MODULE — DEV / ESN AGENCY:
Add explicit clauses on:
- Intellectual property: code, licenses, reuse of building blocks, open source.
- Project confidentiality: Git repos, access, environments, secrets.
- Delivery quality: DoD, minimum tests, mandatory code review, traceability (tickets/ADR).
- Scope/CR management: "no undocumented change", written validation, cost/time impact.
- Basic security: OWASP mindset, secret management, least privilege.`,
	domain.AgencyDataAI: `SPECIFIC MODULE — DATA / AI AGENCY:
Add explicit clauses on:
- Data governance: minimization, purpose, retention, anonymization/pseudonymization.
- Forbidden: sensitive data in public AI tools, unauthorized training on client data.
- Bias & fairness: bias testing, human validation, proportionate explainability.
- Traceability: sources, data lineage, dataset/model versioning, prompt logs where relevant.
- Security: dataset access, encryption at rest/in transit, environment separation.`,
	domain.AgencyCybersecurity: `SPECIFIC MODULE — CYBERSECURITY AGENCY:
Add explicit clauses on:
- "Do no harm": rules of engagement (RoE), written authorizations, strict perimeter.
- Chain of evidence: action logging, secure evidence storage.
- Responsible disclosure: deadlines, coordination, no public exposure.
- Temporary access management: rotation, revocation, nominative accounts.
- Conflicts of interest: never audit a system you administer without guardrails.`,
	domain.AgencyMarketingComm: `SPECIFIC MODULE — MARKETING / COMMS AGENCY:
Add explicit clauses on:
- Advertising truth: no manipulation, no fake reviews, no dark patterns.
- Data & tracking: consent, transparency, minimization, respect for audiences.
- Brand safety: sensitive content, hate speech, disinformation: zero tolerance.
- Intellectual property: rights for visuals, music, content, stock libraries.
- Influencer relations: partnership transparency, mandatory disclosures (if applicable).`,
	domain.AgencyDesignBranding: `SPECIFIC MODULE — DESIGN / BRANDING AGENCY:
Add explicit clauses on:
- Originality: no plagiarism, no "copy of a competitor".
- Licenses: fonts, icons, assets, source deliverables (Figma) and usage rights.
- Accessibility: contrast, readability, inclusivity (disabilities, languages).
- Confidentiality: prototypes, NDA, portfolio publication subject to approval.`,
	domain.AgencyConsultingStrategy: `SPECIFIC MODULE — CONSULTING / STRATEGY AGENCY:
Add explicit clauses on:
- Independence & objectivity: no recommendations biased by hidden commissions.
- Transparency of assumptions: limits, uncertainties, data used.
- Confidentiality and "need to know".
- Anti conflict of interest: systematic disclosure.`,
	domain.AgencyTrainingEdTech: `SPECIFIC MODULE — TRAINING / EDTECH:
Add explicit clauses on:
- Pedagogical fairness: no unrealistic promises ("guaranteed job").
- Assessment: transparent criteria, anti-cheating, respect for learner data.
- Content: license compliance, no piracy, cited sources.
- Minor safety (if relevant) + trainer/learner conduct.`,
	domain.AgencyHRRecruiting: `SPECIFIC MODULE — HR / RECRUITING / MATCHING:
Add explicit clauses on:
- Non-discrimination: professional criteria only, bias audits.
- Candidate data: consent, retention period, access/deletion.
- Transparency: no CV selling without consent, no systemic ghosting.
- Client/candidate confidentiality: strict separation.`,
	domain.AgencyUnknown: `SPECIFIC MODULE — UNKNOWN TYPE:
Add a qualification section:
- What is the model: service, product, audit, data?
- What data is handled?
- What are the major risks: reputation, security, legal, human?`,
}

// EthicsInstruction builds the ethics-charter instruction.
func EthicsInstruction(p *domain.Project, u *domain.UserProfile, override domain.AgencyType) string {
	agencyType := ResolveAgencyType(override, p)
	country := orPlaceholder(p.Country)

	return fmt.Sprintf(`You are a Chief Ethics & Governance Officer. Write the Ethics Charter of "%s".
Style: solemn, inspiring, foundational, yet operational and applicable.

CONTEXT (source of truth):
- Organization: %s
- Country / territory: %s
- Offer / services: %s
- Target clients: %s
- Constraints (sector, compliance, data): %s
- Team / contractors: %s

HOUSE RULES:
- Do not invent any certification, law or label that was not provided.
- Tone: solemn and foundational, but applicable (rules + examples).
- Strict Markdown format.
- Every theme contains: Allowed / Forbidden / Expected.
- Include: "Reporting & sanctions" + "Non-retaliation".

Detected organization type: %s
%s

MANDATORY STRUCTURE:
## 0. Preamble
## 1. Our fundamental pillars (3 non-negotiable values)
## 2. Commitment to the territory (%s)
## 3. Code of conduct & integrity (internal + external)
## 4. Technological responsibility (AI, data, security)
## 5. Client commitment & quality
## 6. Reporting, investigations and sanctions
## 7. Acceptance & updates (versioning)
## Annex: Ethics checklist (10 questions)`,
		orPlaceholder(p.Name),
		orPlaceholder(p.Name),
		country,
		orPlaceholder(p.Offer),
		orPlaceholder(p.ICP),
		orPlaceholder(p.Constraints),
		orPlaceholder(u.Team),
		agencyType,
		ethicsSpecializers[agencyType],
		country,
	)
}
