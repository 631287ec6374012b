package forge

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/trigenys/apex-forge/internal/domain"
)

// Placeholder is rendered wherever a project field is missing, so the
// generated document flags the gap instead of inventing a value.
const Placeholder = "To be specified"

// FillInMarker is the explicit blank left inside formal contracts.
const FillInMarker = "[TO BE COMPLETED]"

func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return Placeholder
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// clampText truncates oversized transcript dumps so a single instruction
// stays within the generation service's useful context. The cut backs up
// to a rune boundary so the clamp never produces invalid UTF-8.
func clampText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "\n\n[TRUNCATED]"
}

// projectContext renders the shared context block every builder embeds.
// Missing fields render as the placeholder on purpose: downstream
// generation must surface gaps, not fill them.
func projectContext(p *domain.Project, u *domain.UserProfile) string {
	var b strings.Builder
	b.WriteString("CONTEXT (source of truth):\n")
	b.WriteString("- Name: " + orPlaceholder(p.Name) + "\n")
	b.WriteString("- Country / market: " + orPlaceholder(p.Country) + "\n")
	b.WriteString("- Offer / services: " + orPlaceholder(p.Offer) + "\n")
	b.WriteString("- Customer problem: " + orPlaceholder(p.Problem) + "\n")
	b.WriteString("- ICP / target: " + orPlaceholder(p.ICP) + "\n")
	b.WriteString("- Differentiation: " + orPlaceholder(p.Differentiation) + "\n")
	b.WriteString("- Intended pricing: " + orPlaceholder(p.Pricing) + "\n")
	b.WriteString("- Constraints: " + orPlaceholder(p.Constraints) + "\n")
	b.WriteString("- Proof / references: " + orPlaceholder(p.Proof) + "\n")
	b.WriteString("- Resources / capacity: " + orPlaceholder(u.Team))
	return b.String()
}

// antiFabricationRules is the universal contract against invented facts.
const antiFabricationRules = `CRITICAL RULES:
- Never invent a fact. When information is missing, write "` + Placeholder + `" and propose 3 clarifying questions.
- Give numeric estimates as MIN / LIKELY / MAX ranges whenever possible, never false precision.
- Prioritize the actionable: bullets, decisions, risks, guardrails. Zero marketing fluff.
- STRICT Markdown output: "## " for sections, "### " for subsections, "- " bullet lists only, no free prose outside the requested structure.`

// formattingRules is the strict layout contract shared by the document
// builders.
const formattingRules = `FORMATTING RULES (strict):
- Use exclusively "## " for section titles.
- Use exclusively "### " for subsection titles.
- Use "- " bullet lists for key points.
- Each section: 4 to 6 bullets max. Each subsection: 2 to 4 bullets max.`

// issueDate renders the date stamped on formal documents.
func issueDate(now time.Time) string {
	return now.Format("2 January 2006")
}

// historyTranscript renders role-tagged messages, newest last, in the
// form the distiller and the legal builders embed.
func historyTranscript(history []*domain.ChatMessage) string {
	parts := make([]string, 0, len(history))
	for _, m := range history {
		parts = append(parts, strings.ToUpper(string(m.Role))+": "+m.Text)
	}
	return strings.Join(parts, "\n\n")
}

func collaboratorNames(u *domain.UserProfile) string {
	if len(u.Collaborators) == 0 {
		return "Solo founder"
	}
	return strings.Join(u.Collaborators, ", ")
}
