package domain

import "time"

type ProjectID string
type UserID string
type MessageID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// AgencyType is the business archetype of a project. It is derived from
// the project's free-text fields and recomputed on demand; a stored value
// only acts as an override.
type AgencyType string

const (
	AgencyDevESN             AgencyType = "DEV_ESN"
	AgencyDataAI             AgencyType = "DATA_AI"
	AgencyCybersecurity      AgencyType = "CYBERSECURITY"
	AgencyMarketingComm      AgencyType = "MARKETING_COMM"
	AgencyDesignBranding     AgencyType = "DESIGN_BRANDING"
	AgencyConsultingStrategy AgencyType = "CONSULTING_STRATEGY"
	AgencyTrainingEdTech     AgencyType = "TRAINING_EDTECH"
	AgencyHRRecruiting       AgencyType = "HR_RECRUITING"
	AgencyUnknown            AgencyType = "UNKNOWN"
)

// RevenueModelType describes how the project charges.
type RevenueModelType string

const (
	RevenueSaaS         RevenueModelType = "SAAS"
	RevenueRetainer     RevenueModelType = "RETAINER"
	RevenueTimeMaterial RevenueModelType = "TIME_MATERIAL"
	RevenueProjectFixed RevenueModelType = "PROJECT_FIXED"
	RevenueHybrid       RevenueModelType = "HYBRID"
	RevenueUnknown      RevenueModelType = "UNKNOWN"
)

// ProjectCategory is the coarse kind of venture (agency vs SaaS vs ...).
type ProjectCategory string

const (
	CategoryAgency       ProjectCategory = "AGENCY"
	CategorySaaS         ProjectCategory = "SAAS"
	CategoryMarketplace  ProjectCategory = "MARKETPLACE"
	CategoryInternalTool ProjectCategory = "INTERNAL_TOOL"
	CategoryImpact       ProjectCategory = "IMPACT"
	CategoryUnknown      ProjectCategory = "UNKNOWN"
)

type Timestamp = time.Time
