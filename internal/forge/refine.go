package forge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/trigenys/apex-forge/internal/domain"
)

// Turn is one exchange of a refinement conversation. Refinement history
// is scoped to the document being refined, separate from the mentor
// transcript.
type Turn struct {
	Role domain.Role `json:"role"`
	Text string      `json:"text"`
}

// RefineResponse is the structured result of a refinement call: a
// conversational reply plus the full replacement document. The content
// is always a complete document, never a patch.
type RefineResponse struct {
	AssistantMessage string `json:"assistantMessage"`
	UpdatedContent   string `json:"updatedContent"`
}

// RefineApology is returned in place of the model reply when the
// structured response cannot be decoded. The document is left as-is.
const RefineApology = "I hit an error while analyzing that. Could you rephrase?"

// RefineSchema describes the structured refine output. Both fields are
// required so a reply can never silently drop the document.
func RefineSchema() *domain.ResponseSchema {
	return &domain.ResponseSchema{
		Type: domain.SchemaObject,
		Properties: map[string]*domain.ResponseSchema{
			"assistantMessage": {
				Type:        domain.SchemaString,
				Description: "Direct dialogue message for the user (advice, questions, confirmation).",
			},
			"updatedContent": {
				Type:        domain.SchemaString,
				Description: "The full document content (Markdown), possibly updated.",
			},
		},
		Required: []string{"assistantMessage", "updatedContent"},
	}
}

// DecodeRefineResponse parses the structured refine payload. A missing
// required field is an error even when the JSON itself is valid.
func DecodeRefineResponse(raw []byte) (*RefineResponse, error) {
	var r RefineResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode refine response: %w", err)
	}
	if strings.TrimSpace(r.AssistantMessage) == "" {
		return nil, fmt.Errorf("decode refine response: missing assistantMessage")
	}
	if r.UpdatedContent == "" {
		return nil, fmt.Errorf("decode refine response: missing updatedContent")
	}
	return &r, nil
}

// RefineInstruction builds the refinement instruction around the
// current document state and the new user instruction.
func RefineInstruction(docType domain.DocType, currentContent, userMessage string, history []Turn, p *domain.Project) string {
	turns := make([]string, 0, len(history))
	for _, t := range history {
		turns = append(turns, strings.ToUpper(string(t.Role))+": "+t.Text)
	}

	return fmt.Sprintf(`You are a strategy expert. You are working on the document "%s" for the project "%s".

CURRENT DOCUMENT CONTENT:
---
%s
---

REFINEMENT CONVERSATION HISTORY:
%s

NEW QUESTION/INSTRUCTION FROM THE ENTREPRENEUR:
"%s"

YOUR MISSIONS:
1. ANALYZE: If the user asks "what do you need?", identify the "%s" markers or logical gaps in the current document.
2. REPLY: Answer the user concisely and professionally in "assistantMessage".
3. UPDATE: If the user provides clarifications, integrate them into "updatedContent" while keeping the strict Markdown format (##, ###, **bold**, - lists). If no change is needed, return the current content as-is.

FORMATTING RULES:
- Always use "**text**" for bold.
- Never invent data the user did not confirm.`,
		docType,
		orPlaceholder(p.Name),
		currentContent,
		strings.Join(turns, "\n"),
		userMessage,
		Placeholder,
	)
}
