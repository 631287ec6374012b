package domain

// PlanSection identifies one chapter of the venture plan. The set is
// closed: the distiller and the plan view only ever address these six.
type PlanSection string

const (
	SectionFoundations   PlanSection = "Foundations & Idea"
	SectionMarket        PlanSection = "Market & Target"
	SectionBusinessModel PlanSection = "Business Model"
	SectionLegal         PlanSection = "Legal Structure"
	SectionFinancials    PlanSection = "Finance & ROI"
	SectionGrowth        PlanSection = "Marketing & Expansion"
)

// PlanSections returns the workflow order. The mentor walks sections in
// this order and the distiller reports against the same list.
func PlanSections() []PlanSection {
	return []PlanSection{
		SectionFoundations,
		SectionMarket,
		SectionBusinessModel,
		SectionLegal,
		SectionFinancials,
		SectionGrowth,
	}
}

// ValidSection reports whether s is one of the closed section set.
func ValidSection(s PlanSection) bool {
	for _, known := range PlanSections() {
		if s == known {
			return true
		}
	}
	return false
}

// SectionProgress is the distilled state of one plan section.
// Completion is a percentage in [0,100]. Progress only changes by full
// replacement of the section, never by partial edits.
type SectionProgress struct {
	Content    string  `json:"content"`
	Completion float64 `json:"completion"`
}

// PlanData maps sections to their distilled progress. Sections with no
// signal yet are simply absent.
type PlanData map[PlanSection]SectionProgress

// Merge returns a copy of p with every section in delta fully replaced.
// Sections absent from delta are left untouched.
func (p PlanData) Merge(delta PlanData) PlanData {
	out := make(PlanData, len(p)+len(delta))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range delta {
		out[k] = v
	}
	return out
}

// SimulationPoint is one month of a projected financial trajectory.
type SimulationPoint struct {
	Month     int     `json:"month"`
	Revenue   float64 `json:"revenue"`
	Expenses  float64 `json:"expenses"`
	Stress    float64 `json:"stress"`
	Stability float64 `json:"stability"`
}
