package forge

import (
	"encoding/json"
	"fmt"

	"github.com/trigenys/apex-forge/internal/domain"
)

// SculptedProfile is the structured result of profile sculpting. The
// name is never rewritten, so it is absent here.
type SculptedProfile struct {
	Role      string   `json:"role"`
	Bio       string   `json:"bio"`
	Expertise []string `json:"expertise"`
}

// SculptInstruction builds the collaborator-profile sculpting
// instruction.
func SculptInstruction(collab *domain.CollaboratorProfile, p *domain.Project) string {
	return fmt.Sprintf(`You are a personal-branding expert. Sculpt the profile of %s for the project "%s".
Current role: %s
Current bio: %s
Produce a sharpened role title, a 2-3 sentence professional bio, and 3 to 6 expertise keywords.
JSON only.`,
		orPlaceholder(collab.Name),
		orPlaceholder(p.Name),
		orPlaceholder(collab.Role),
		orPlaceholder(collab.Bio),
	)
}

// SculptSchema describes the sculpted-profile output.
func SculptSchema() *domain.ResponseSchema {
	return &domain.ResponseSchema{
		Type: domain.SchemaObject,
		Properties: map[string]*domain.ResponseSchema{
			"role": {Type: domain.SchemaString},
			"bio":  {Type: domain.SchemaString},
			"expertise": {
				Type:  domain.SchemaArray,
				Items: &domain.ResponseSchema{Type: domain.SchemaString},
			},
		},
		Required: []string{"role", "bio", "expertise"},
	}
}

// DecodeSculptedProfile parses a sculpting payload.
func DecodeSculptedProfile(raw []byte) (*SculptedProfile, error) {
	var s SculptedProfile
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode sculpted profile: %w", err)
	}
	return &s, nil
}
