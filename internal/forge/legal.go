package forge

import (
	"fmt"
	"strings"

	"github.com/trigenys/apex-forge/internal/domain"
)

// LegalDocType identifies a formal contract family. Requests arrive
// with free-form labels, so NormalizeLegalDocType maps synonyms to the
// canonical type first.
type LegalDocType string

const (
	LegalNDA        LegalDocType = "NDA"
	LegalMSA        LegalDocType = "MSA"
	LegalSOW        LegalDocType = "SOW"
	LegalTerms      LegalDocType = "CGV"
	LegalTOS        LegalDocType = "TOS"
	LegalPrivacy    LegalDocType = "PRIVACY"
	LegalDPA        LegalDocType = "DPA"
	LegalContractor LegalDocType = "CONTRACTOR"
	LegalEmployment LegalDocType = "EMPLOYMENT"
	LegalUnknown    LegalDocType = "UNKNOWN"
)

// historyClampLimit bounds the transcript embedded in a legal
// instruction.
const historyClampLimit = 14000

var legalDocSynonyms = map[string]LegalDocType{
	"NDA":                       LegalNDA,
	"NON-DISCLOSURE AGREEMENT":  LegalNDA,
	"CONFIDENTIALITY AGREEMENT": LegalNDA,
	"MSA":                       LegalMSA,
	"MASTER SERVICES AGREEMENT": LegalMSA,
	"SOW":                       LegalSOW,
	"STATEMENT OF WORK":         LegalSOW,
	"REQUIREMENTS DOCUMENT":     LegalSOW,
	"CGV":                       LegalTerms,
	"GENERAL TERMS":             LegalTerms,
	"TERMS OF SALE":             LegalTerms,
	"TOS":                       LegalTOS,
	"TERMS":                     LegalTOS,
	"TERMS OF SERVICE":          LegalTOS,
	"PRIVACY":                   LegalPrivacy,
	"PRIVACY POLICY":            LegalPrivacy,
	"DPA":                       LegalDPA,
	"DATA PROCESSING AGREEMENT": LegalDPA,
	"CONTRACTOR":                LegalContractor,
	"SUBCONTRACTING":            LegalContractor,
	"SERVICE AGREEMENT":         LegalContractor,
	"EMPLOYMENT":                LegalEmployment,
	"EMPLOYMENT CONTRACT":       LegalEmployment,
}

// NormalizeLegalDocType maps a free-form label to its canonical legal
// document type. Unrecognized labels normalize to UNKNOWN, which still
// produces a generic contract skeleton.
func NormalizeLegalDocType(label string) LegalDocType {
	t := strings.ToUpper(strings.TrimSpace(label))
	if dt, ok := legalDocSynonyms[t]; ok {
		return dt
	}
	return LegalUnknown
}

// Clause modules per archetype: what a contract for that business must
// explicitly cover.
var legalSpecializers = map[domain.AgencyType]string{
	domain.AgencyDevESN: `AGENCY MODULE — DEV/ESN (mandatory where relevant):
- IP: code ownership, assignment/license, reusable components, open source & licenses.
- Scope control: Change Request (CR) procedure, written validations, cost/time impacts.
- Delivery: acceptance criteria, acceptance testing, bug handling (fix vs evolution).
- Security: access management, secrets, client vs provider responsibilities.
- Maintenance/SLA (if included): availability, response times, exclusions.`,
	domain.AgencyDataAI: `AGENCY MODULE — DATA/AI:
- Data: minimization, purpose, retention, anonymization/pseudonymization.
- AI: no unauthorized training, logs, human supervision, bias.
- Ownership: models, features, notebooks, pipelines, derived datasets.
- Security: dataset access, encryption, environment separation, export/portability.
- DPA recommended when personal data is involved.`,
	domain.AgencyCybersecurity: `AGENCY MODULE — CYBERSECURITY:
- Rules of engagement (RoE): strict perimeter, written authorizations, test windows.
- Chain of evidence: proofs, storage, confidentiality, retention period.
- Responsible disclosure: notification process, deadlines, coordination.
- Limits: no "do harm", no out-of-perimeter access, stop procedures.`,
	domain.AgencyMarketingComm: `AGENCY MODULE — MARKETING/COMMS:
- Intellectual property: rights of creations, media licenses, stock libraries.
- Brand safety: ban on misleading content, fake reviews, dark patterns.
- Data & tracking: consent, transparency, targeting limits.
- KPIs & reporting: metrics, frequency, best-efforts vs outcome obligations.`,
	domain.AgencyDesignBranding: `AGENCY MODULE — DESIGN/BRANDING:
- Deliverables: sources (Figma), formats, usage rights, iteration perimeter.
- Originality: anti-plagiarism, authorized references, client validation.
- Accessibility: minimum requirements (readability, contrast).`,
	domain.AgencyConsultingStrategy: `AGENCY MODULE — CONSULTING/STRATEGY:
- Independence: transparent assumptions, limits, no outcome guarantee.
- Reinforced confidentiality: documents, interviews, internal data.
- Ownership: methodological deliverables vs client-specific deliverables.`,
	domain.AgencyTrainingEdTech: `AGENCY MODULE — TRAINING/EDTECH:
- Course content IP: usage rights, resale, recordings.
- Assessments: transparent criteria, anti-cheating (if applicable).
- Learner data: retention, access, deletion (if applicable).`,
	domain.AgencyHRRecruiting: `AGENCY MODULE — HR/RECRUITING:
- Candidate data: consent, retention period, deletion.
- Non-discrimination: professional criteria only.
- Confidentiality: client/candidate separation, no CV resale without consent.`,
	domain.AgencyUnknown: `AGENCY MODULE — UNKNOWN:
- Add a "Missing information" section to qualify the business and its risks.`,
}

// Minimum article skeletons per document type.
var legalSkeletons = map[LegalDocType]string{
	LegalNDA: `MINIMUM ARTICLES — NDA:
- Article 1 Definitions
- Article 2 Purpose
- Article 3 Confidential information (inclusions/exclusions)
- Article 4 Confidentiality obligations
- Article 5 Duration
- Article 6 Return/Destruction of information
- Article 7 Liability / damages
- Article 8 Governing law & dispute resolution
- Article 9 Signatures`,
	LegalMSA: `MINIMUM ARTICLES — MSA:
- Article 1 Definitions
- Article 2 Purpose & scope of application
- Article 3 Governance & communication
- Article 4 Ordering terms (SOWs / purchase orders)
- Article 5 Price, invoicing, payment, penalties
- Article 6 Obligations of the parties (client vs provider)
- Article 7 Intellectual property
- Article 8 Confidentiality
- Article 9 Data & security (if applicable)
- Article 10 Warranties, limits, exclusions
- Article 11 Limitation of liability
- Article 12 Termination
- Article 13 Force majeure
- Article 14 Governing law & disputes
- Article 15 Signatures + Annexes`,
	LegalSOW: `MINIMUM ARTICLES — SOW:
- Article 1 Purpose & context
- Article 2 Scope (IN / OUT)
- Article 3 Deliverables & acceptance criteria
- Article 4 Schedule & milestones
- Article 5 Organization (roles/RACI, rituals)
- Article 6 Price & payment terms (deposit, milestones)
- Article 7 Change Request (CR)
- Article 8 Confidentiality & IP (reference the MSA if one exists)
- Article 9 Support / maintenance (if included)
- Article 10 Termination & effects
- Article 11 Annexes (specifications, mockups)`,
	LegalTerms: `MINIMUM ARTICLES — GENERAL TERMS (SERVICES):
- Article 1 Purpose & scope
- Article 2 Ordering
- Article 3 Price & payment
- Article 4 Lead times & execution
- Article 5 Client obligations (information, validations)
- Article 6 IP & licenses
- Article 7 Confidentiality
- Article 8 Data & security (if applicable)
- Article 9 Warranties & liability (limitation)
- Article 10 Termination
- Article 11 Disputes`,
	LegalDPA: `MINIMUM ARTICLES — DPA:
- Article 1 Definitions & roles (controller / processor)
- Article 2 Purpose & duration
- Article 3 Documented instructions
- Article 4 Security measures
- Article 5 Sub-processors
- Article 6 Assistance (data-subject rights, incidents)
- Article 7 Location & transfers (if applicable)
- Article 8 Audit & compliance
- Article 9 Fate of data at end of contract
- Article 10 Annexes (data categories, purposes, durations)`,
}

const legalGenericSkeleton = `MINIMUM ARTICLES — GENERIC DOCUMENT:
- Article 1 Definitions
- Article 2 Purpose
- Article 3 Obligations of the parties
- Article 4 Price & payment (if applicable)
- Article 5 Confidentiality
- Article 6 Intellectual property
- Article 7 Liability
- Article 8 Termination
- Article 9 Disputes & signatures`

func legalSkeleton(dt LegalDocType) string {
	if s, ok := legalSkeletons[dt]; ok {
		return s
	}
	return legalGenericSkeleton
}

// LegalInstruction builds a formal contract instruction from a raw
// document label and the mentor transcript. The transcript is the
// evidence the contract must be adapted to, clamped so long sessions
// do not overrun the generation context.
func LegalInstruction(label string, history []*domain.ChatMessage, u *domain.UserProfile, override domain.AgencyType) string {
	docType := NormalizeLegalDocType(label)
	agencyType := override
	if agencyType == "" {
		agencyType = InferAgencyTypeFromHistory(history)
	}

	transcript := clampText(historyTranscript(history), historyClampLimit)
	userName := orPlaceholder(firstNonEmpty(u.FullName, u.Name))

	return fmt.Sprintf(`You are a principal legal counsel specialized in service businesses.
Your mission: write a contractual document "%s" (docType=%s) for the entrepreneur %s based in %s.

DISCUSSION CONTEXT (evidence):
---
%s
---

DRAFTING DIRECTIVES (strict):
1) STRUCTURE: numbered ARTICLES + sub-articles (e.g. "Article 1 — Purpose").
2) LANGUAGE: clear legal prose, short sentences, clean definitions.
3) PROTECTION: clauses protective of %s's business (without being abusive).
4) ANTI-FABRICATION: when an element is missing, insert "%s" at the exact spot + list it in an Annex "Information to complete".
5) FORMAT: pure Markdown (titles, lists), ready for PDF export.
6) NO INTRO: start directly with the document TITLE (line 1).
7) ADAPTATION: weave in the information extracted from the transcript (offer, scope, price, lead times, deliverables, responsibilities).

AGENCY TYPE: %s
%s

DOCUMENT-TYPE SPECIFIC REQUIREMENTS:
%s

FINAL CONSTRAINT:
- Write no advice "outside the document". The output must be the complete contract, directly.`,
		orPlaceholder(label),
		docType,
		userName,
		orPlaceholder(u.Country),
		transcript,
		userName,
		Placeholder,
		agencyType,
		legalSpecializers[agencyType],
		legalSkeleton(docType),
	)
}
