package forge

import (
	"fmt"

	"github.com/trigenys/apex-forge/internal/domain"
)

var pitchSpecializers = map[domain.AgencyType]string{
	domain.AgencyDevESN: `PITCH ANGLE — DEV/ESN:
- Pain: late projects, bugs, technical debt, hidden costs.
- Promise: disciplined delivery, measured quality, reduced time-to-value.
- Cash mechanics: packages (Discovery/Build/Maintain), retainer, SLA.
- Scalable: component reuse + playbooks + industrialization.`,
	domain.AgencyDataAI: `PITCH ANGLE — DATA/AI:
- Pain: blind decisions, slow reporting, dirty data.
- Promise: reliable pipelines + dashboards + useful AI (not gimmicks).
- Cash: implementation + data ops/monitoring subscription + model upsell.
- Scalable: pipeline templates + connectors + governance methodology.`,
	domain.AgencyCybersecurity: `PITCH ANGLE — CYBERSECURITY:
- Pain: exploding risk, expensive incidents, low maturity.
- Promise: prevention/detection/response with process + evidence + confidentiality.
- Cash: audits, pentests, managed SOC, recurring GRC.
- Scalable: runbooks + tooling + maturity-tiered packaged offers.`,
	domain.AgencyMarketingComm: `PITCH ANGLE — MARKETING/COMMS:
- Pain: high CAC, content that does not convert, fragile tracking.
- Promise: measured performance + creative that sells + brand safety.
- Cash: retainer + campaigns + production + performance bonus (where applicable).
- Scalable: test-and-learn system + creative templates + data.`,
	domain.AgencyDesignBranding: `PITCH ANGLE — DESIGN/BRANDING:
- Pain: mediocre UX, weak adoption, inconsistent brand.
- Promise: design system + conversion/adoption-oriented UX.
- Cash: UX audit, redesign, recurring design ops.
- Scalable: reusable design system + research-to-delivery process.`,
	domain.AgencyConsultingStrategy: `PITCH ANGLE — CONSULTING/STRATEGY:
- Pain: slow organization, fuzzy decisions, chaotic execution.
- Promise: diagnosis, plan, steering, handover. No fluff.
- Cash: scoped missions + recurring PMO support.
- Scalable: frameworks + assets + playbooks + verticalization.`,
	domain.AgencyTrainingEdTech: `PITCH ANGLE — TRAINING/EDTECH:
- Pain: theoretical training, weak employability.
- Promise: project-based curriculum + portfolio + coaching.
- Cash: cohorts + B2B + content subscriptions.
- Scalable: modular content + platforms + mentors.`,
	domain.AgencyHRRecruiting: `PITCH ANGLE — HR/RECRUITING:
- Pain: long time-to-hire, poor matching, churn.
- Promise: strict qualification + smart matching + follow-up.
- Cash: fees + company subscriptions.
- Scalable: scoring + process + network.`,
	domain.AgencyUnknown: `PITCH ANGLE — UNKNOWN:
- Stay generic and insert "` + Placeholder + `" where needed.`,
}

// PitchInstruction builds the instruction for the 2-minute spoken pitch
// script.
func PitchInstruction(p *domain.Project, u *domain.UserProfile, override domain.AgencyType) string {
	agencyType := ResolveAgencyType(override, p)

	return fmt.Sprintf(`You are an expert in strategic narration and executive pitching.
Write a SPOKEN 2-minute pitch script (roughly 260 to 320 words), timed, fluent when read aloud. No needless jargon.

PROJECT: %s
FOUNDER: %s
COUNTRY: %s
VISION: %s

%s

DETECTED AGENCY TYPE: %s
%s

ANTI-FABRICATION RULES:
- Do not invent figures, prices or market shares. When information is missing, write "%s" (at most 3 times).
- No unrealistic promises ("infinitely scalable"). Prefer "scalable through standardization".

FORMAT DIRECTIVES:
- Use the "## " section titles exactly as below.
- Under each timecode, write 2 to 5 sentences max.
- Add tone annotations in brackets: [Pause], [Smile], [Slow down], [Speed up], [Emphasize].
- End with a clear CTA: "I want X from you" (intro, meeting, partnership, pilot budget).

STRUCTURE TO FOLLOW:
## 00:00 - THE HOOK
## 00:30 - THE CONTRAST (before vs after)
## 01:00 - THE VALUE MECHANICS
## 01:45 - THE CALL TO ACTION

MANDATORY BONUS (1 line):
After the pitch, add:
### Ultra-short variant (20 seconds)`,
		orPlaceholder(p.Name),
		orPlaceholder(firstNonEmpty(u.FullName, u.Name)),
		orPlaceholder(p.Country),
		orPlaceholder(p.MainGoal),
		projectContext(p, u),
		agencyType,
		pitchSpecializers[agencyType],
		Placeholder,
	)
}
