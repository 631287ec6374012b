package domain

// DocType identifies one entry of the blueprint catalog. The set is
// closed; generated assets are keyed by these values only.
type DocType string

const (
	DocConceptOnePager   DocType = "CONCEPT_ONE_PAGER"
	DocPitchScript       DocType = "PITCH_SCRIPT"
	DocRoadmap12M        DocType = "ROADMAP_12M"
	DocGTMStrategy       DocType = "GTM_STRATEGY"
	DocBusinessModel     DocType = "BUSINESS_MODEL_RESUME"
	DocFinancialForecast DocType = "FINANCIAL_FORECAST"
	DocUnitEconomics     DocType = "UNIT_ECONOMICS"
	DocFoundersAgreement DocType = "PACTE_ASSOCIES"
	DocCapTable          DocType = "CAP_TABLE"
	DocRACIOrg           DocType = "RACI_ORG"
	DocEthicsCharter     DocType = "CHARTE_ETHIQUE"
	DocDeliveryPlaybook  DocType = "PLAYBOOK_DELIVERY"
	DocOffersPricing     DocType = "OFFRES_PRICING"
	DocProposal          DocType = "PROP_COMMERCIALE"
	DocSOWTemplate       DocType = "SOW_TEMPLATE"
	DocChangeRequest     DocType = "CHANGE_REQUEST_FORM"
	DocAcceptanceReport  DocType = "PV_RECETTE"
	DocPRDMinimal        DocType = "PRD_MINIMAL"
	DocTechSpec          DocType = "SPEC_TECH"
	DocQAPlan            DocType = "QA_PLAN"
	DocCompanyProfile    DocType = "COMPANY_PROFILE"
	DocBrandKit          DocType = "BRAND_KIT_SUMMARY"
)

// DocTypes returns the full blueprint catalog.
func DocTypes() []DocType {
	return []DocType{
		DocConceptOnePager, DocPitchScript, DocRoadmap12M, DocGTMStrategy,
		DocBusinessModel, DocFinancialForecast, DocUnitEconomics,
		DocFoundersAgreement, DocCapTable, DocRACIOrg, DocEthicsCharter,
		DocDeliveryPlaybook, DocOffersPricing, DocProposal, DocSOWTemplate,
		DocChangeRequest, DocAcceptanceReport, DocPRDMinimal, DocTechSpec,
		DocQAPlan, DocCompanyProfile, DocBrandKit,
	}
}

// ChatMessage is one entry of the mentor conversation. History is
// append-only; send order is the only timeline the distiller and the
// classifiers trust.
type ChatMessage struct {
	ID        MessageID
	ProjectID ProjectID
	Role      Role
	Text      string
	CreatedAt Timestamp

	// Citations holds source URLs when the mentor grounded its answer.
	Citations []string
}

// CollaboratorProfile describes one co-founder or associate.
type CollaboratorProfile struct {
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Bio       string   `json:"bio"`
	Expertise []string `json:"expertise"`
}

// UserProfile is the entrepreneur behind one or more projects.
type UserProfile struct {
	ID       UserID
	Name     string
	FullName string
	Email    string
	Country  string
	Currency string

	BusinessName string
	Industry     string
	MainGoal     string

	// Team capacity in free text (e.g. "2 devs, 30 days/month").
	Team string

	Collaborators []string

	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// Project is the unit of work: the venture being co-authored. Free-text
// fields feed the classifiers and the prompt builders; Plan and
// GeneratedAssets are mutated by the distiller and the forge.
type Project struct {
	ID      ProjectID
	OwnerID UserID
	Name    string

	Country  string
	Currency string

	// Descriptive fields gathered at onboarding and refined over time.
	MainGoal        string
	Description     string
	Offer           string
	Problem         string
	ICP             string
	Value           string
	Differentiation string
	RevenueModel    string
	Pricing         string
	Positioning     string
	Constraints     string
	Proof           string
	Services        string
	Stack           string
	Scope           string
	Timeline        string
	Assumptions     string
	Costs           string
	ClientName      string
	ClientContact   string

	// Optional archetype overrides. Empty means "infer from text".
	AgencyType       AgencyType
	RevenueModelType RevenueModelType
	Category         ProjectCategory

	Collaborators []CollaboratorProfile

	// Plan keys are drawn from the closed PlanSection set.
	Plan PlanData

	// GeneratedAssets keys are drawn from the closed DocType set.
	GeneratedAssets map[DocType]string

	CreatedAt Timestamp
	UpdatedAt Timestamp
}
