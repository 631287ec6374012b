package forge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/trigenys/apex-forge/internal/domain"
)

// DistillInstruction builds the plan-extraction instruction from the
// mentor transcript.
func DistillInstruction(history []*domain.ChatMessage, u *domain.UserProfile) string {
	names := "N/A"
	if len(u.Collaborators) > 0 {
		names = strings.Join(u.Collaborators, ", ")
	}

	sections := make([]string, 0, len(domain.PlanSections()))
	for _, s := range domain.PlanSections() {
		sections = append(sections, `"`+string(s)+`"`)
	}

	return fmt.Sprintf(`Analyze this conversation. For each workflow section, produce a rich, strategic, structured synthesis.
Each section must read like a chapter of a professional Business Plan.
Weave in the collaborators' roles (%s) where mentioned.
Use clear subtitles and bullet lists.

Sections: %s.

Transcript:
%s`,
		names,
		strings.Join(sections, ", "),
		historyTranscript(history),
	)
}

// PlanSchema describes the structured distillation output: one
// {content, completion} object per plan section. Sections are optional
// so a sparse conversation yields a sparse delta.
func PlanSchema() *domain.ResponseSchema {
	props := make(map[string]*domain.ResponseSchema, len(domain.PlanSections()))
	for _, s := range domain.PlanSections() {
		props[string(s)] = &domain.ResponseSchema{
			Type: domain.SchemaObject,
			Properties: map[string]*domain.ResponseSchema{
				"content":    {Type: domain.SchemaString},
				"completion": {Type: domain.SchemaNumber},
			},
		}
	}
	return &domain.ResponseSchema{
		Type:       domain.SchemaObject,
		Properties: props,
	}
}

// DecodePlan parses a distillation payload into a plan delta. Unknown
// section keys are dropped and completion is clamped to [0, 100], so a
// sloppy payload can never corrupt the stored plan.
func DecodePlan(raw []byte) (domain.PlanData, error) {
	var payload map[string]domain.SectionProgress
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	delta := make(domain.PlanData)
	for key, progress := range payload {
		section := domain.PlanSection(key)
		if !domain.ValidSection(section) {
			continue
		}
		if progress.Completion < 0 {
			progress.Completion = 0
		}
		if progress.Completion > 100 {
			progress.Completion = 100
		}
		delta[section] = progress
	}
	return delta, nil
}
