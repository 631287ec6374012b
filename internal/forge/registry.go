package forge

import (
	"fmt"
	"time"

	"github.com/trigenys/apex-forge/internal/domain"
)

// BuildInput carries everything a builder may draw on. Overrides are
// optional; empty values fall back to stored tags, then classification.
type BuildInput struct {
	Project *domain.Project
	User    *domain.UserProfile
	History []*domain.ChatMessage

	AgencyOverride   domain.AgencyType
	RevenueOverride  domain.RevenueModelType
	CategoryOverride domain.ProjectCategory
}

// Builder produces the complete generation instruction for one
// document type.
type Builder func(in BuildInput, now time.Time) string

// Registry dispatches document types to their builders. The clock is
// injected so two builds of the same input are byte-identical in tests.
type Registry struct {
	builders map[domain.DocType]Builder
	now      func() time.Time
}

// NewRegistry builds the full document catalog. A nil clock defaults to
// time.Now.
func NewRegistry(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	r := &Registry{now: now}
	r.builders = map[domain.DocType]Builder{
		domain.DocConceptOnePager: func(in BuildInput, now time.Time) string {
			return OnePagerInstruction(in.Project, in.User, in.AgencyOverride, now)
		},
		domain.DocPitchScript: func(in BuildInput, _ time.Time) string {
			return PitchInstruction(in.Project, in.User, in.AgencyOverride)
		},
		domain.DocBusinessModel: func(in BuildInput, _ time.Time) string {
			return BusinessModelInstruction(in.Project, in.User, in.CategoryOverride)
		},
		domain.DocOffersPricing: func(in BuildInput, _ time.Time) string {
			return PricingInstruction(in.Project, in.User, in.AgencyOverride, in.RevenueOverride)
		},
		domain.DocProposal: func(in BuildInput, now time.Time) string {
			return ProposalInstruction(in.Project, in.User, in.AgencyOverride, now)
		},
		domain.DocSOWTemplate: func(in BuildInput, _ time.Time) string {
			return SOWInstruction(in.Project, in.User, in.AgencyOverride)
		},
		domain.DocEthicsCharter: func(in BuildInput, _ time.Time) string {
			return EthicsInstruction(in.Project, in.User, in.AgencyOverride)
		},
		domain.DocDeliveryPlaybook: func(in BuildInput, _ time.Time) string {
			return DeliveryPlaybookInstruction(in.Project, in.User)
		},
		domain.DocFoundersAgreement: func(in BuildInput, _ time.Time) string {
			return LegalInstruction("FOUNDERS AGREEMENT", in.History, in.User, in.AgencyOverride)
		},
		domain.DocRoadmap12M:        thinBuilder("a 12-month execution roadmap with quarterly milestones"),
		domain.DocGTMStrategy:       thinBuilder("a Go-To-Market strategy (channels, sequencing, first 100 clients)"),
		domain.DocFinancialForecast: thinBuilder("a 12-month financial forecast (revenue, costs, cash)"),
		domain.DocUnitEconomics:     thinBuilder("a unit-economics analysis (CAC, LTV, margin per unit)"),
		domain.DocCapTable:          thinBuilder("a capitalization table with founder and partner splits"),
		domain.DocRACIOrg:           thinBuilder("a RACI matrix for the core operating roles"),
		domain.DocChangeRequest:     thinBuilder("a Change Request form template (request, estimate, validation, impact)"),
		domain.DocAcceptanceReport:  thinBuilder("an acceptance report template (deliverables, criteria, reservations, signatures)"),
		domain.DocPRDMinimal:        thinBuilder("a minimal PRD (problem, users, scope, success metrics)"),
		domain.DocTechSpec:          thinBuilder("a technical specification (architecture, stack, interfaces, risks)"),
		domain.DocQAPlan:            thinBuilder("a QA test plan (strategy, coverage, environments, exit criteria)"),
		domain.DocCompanyProfile:    thinBuilder("a company profile (identity, offer, proof, contacts)"),
		domain.DocBrandKit:          thinBuilder("a brand kit summary (voice, palette, typography, usage rules)"),
	}
	return r
}

// thinBuilder covers the catalog entries that have no dedicated
// template yet: a short directive plus the shared context and rules.
func thinBuilder(what string) Builder {
	return func(in BuildInput, _ time.Time) string {
		return fmt.Sprintf(`Produce %s for the project "%s".

%s

%s`,
			what,
			orPlaceholder(in.Project.Name),
			projectContext(in.Project, in.User),
			antiFabricationRules,
		)
	}
}

// Build renders the instruction for the given document type. Unknown
// types get a generic directive naming the type, never an error: the
// catalog must stay total so new types degrade gracefully.
func (r *Registry) Build(docType domain.DocType, in BuildInput) string {
	if b, ok := r.builders[docType]; ok {
		return b(in, r.now())
	}
	return fmt.Sprintf(`Produce the document "%s" for the project "%s".

%s

%s`,
		docType,
		orPlaceholder(in.Project.Name),
		projectContext(in.Project, in.User),
		antiFabricationRules,
	)
}

// Supports reports whether the type has a dedicated builder.
func (r *Registry) Supports(docType domain.DocType) bool {
	_, ok := r.builders[docType]
	return ok
}
