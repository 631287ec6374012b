package forge

import (
	"fmt"

	"github.com/trigenys/apex-forge/internal/domain"
)

// DeliveryPlaybookInstruction builds the delivery operating-system
// playbook instruction. This is the only builder without archetype
// modules: the playbook embeds its own conditional patterns instead.
func DeliveryPlaybookInstruction(p *domain.Project, u *domain.UserProfile) string {
	return fmt.Sprintf(`You are an expert in Operational Excellence + Delivery Management + Software Engineering.
Your mission: write a DELIVERY PLAYBOOK ready to be applied by a team (V1 "Ready to Scale").
Context: %s.

CONTEXT (source of truth):
- Project: %s
- Country/Market: %s
- Offer / project type: %s
- ICP / target client: %s
- Constraints: %s
- Stack / tech: %s
- Team / available roles: %s
- Security / compliance requirements: %s

CRITICAL RULES:
- Do not invent any fact: when information is missing, write "%s" + 3 questions.
- Everything must be actionable: checklists, templates, criteria, rituals, gates.
- Strict Markdown format with titles and subtitles.
- Tone: pragmatic, iterative, quality-driven, "Ready to Scale".

MANDATORY STRUCTURE:
## 0. Playbook purpose & operating principles
- 7 principles max (e.g. "No undocumented change", "Non-negotiable quality gates")

## 1. Governance & roles (RACI)
- Roles: Product Owner, Tech Lead, QA, Dev, Ops, Client sponsor, Key users
- Who decides what, who validates what, expected response times (decision SLA)

## 2. Client Onboarding phase (0 -> 24h)
Objective: turn a signed prospect into a reassured partner.
Include:
- "Kickoff Ready" checklist
- Information gathering: access, environments, constraints, data, stakeholders
- Starter pack: kickoff agenda, channels, reference doc, calendar
- Template: "Kickoff minutes" (sections)

## 3. Scoping & execution contract (Scope Control)
Include:
- Scope definition (in/out) + assumptions
- Acceptance criteria (per user story / deliverable)
- Change Request (CR) process: flow, estimates, validation, impact
- Pattern: **Scope Gate** (no dev without DoR/AC)

## 4. Production workflow (Alpha -> Beta -> Release)
Describe the sequential steps and the "quality gates".
Include:
- DoR (Definition of Ready) and DoD (Definition of Done)
- Git branching strategy (trunk-based or gitflow depending on context)
- Minimal CI/CD (lint, tests, build, security scan)
- Versioning convention (SemVer)
- Mandatory artifacts: ADR, README, runbook, changelog
- Pattern: **Release Train** or **Feature Flags** (if useful)

## 5. Quality control system (QC)
Include checklists:
- Code quality: lint, formatting, complexity, duplication
- Tests: unit, integration, e2e, smoke
- Security: secrets, dependencies, RBAC, audit logs (if applicable)
- Performance: perf budget, profiling, pagination, caching
- UX: basic accessibility, responsive, errors
- Pattern: **Quality Gate** + **Shift-left testing**

## 6. Architecture patterns & standards (per project type)
Give a "Recommended patterns" section with:
A) Design patterns (code)
- Factory, Strategy, Adapter, Facade, Repository, Unit of Work
- Observer/Event Bus (if event-driven)
- Dependency Injection
- Command (actions), Specification (business rules)

B) Architecture patterns (system)
- Layered / Clean Architecture
- Modular Monolith (default) vs Microservices (conditions)
- CQRS (if asymmetric read/write)
- Event Sourcing (rare, strict conditions)
- Pattern: **12-Factor App** (if web/cloud)

C) Resilience patterns
- Retry + backoff, Circuit Breaker, Timeout
- Idempotency keys (payments/orders)
- Outbox pattern (if reliable events)
- Rate limiting

For each pattern: "When to use / When to avoid / Concrete example in this project".

## 7. Feedback management & continuous improvement
Include:
- Cadence (weekly, sprint review, demo)
- Feedback collection: form, interviews, analytics
- Prioritization: ICE/RICE
- Rituals: retro, blameless post-mortem
- Pattern: **Feedback Loop** + **Kaizen**

## 8. Communication & reporting (client + internal)
Include:
- Weekly report template (progress, risks, pending decisions)
- Risk matrix (probability/impact/plan)
- Incident management (when things break, who alerts)

## 9. Deployment, run & support
Include:
- Environments (dev/staging/prod)
- Observability: logs, metrics, traces (minimum)
- Operations runbook
- Support SLA (if offered) + escalation process
- Pattern: **Runbook-first** + **SRE-lite**

## 10. Annexes (templates)
Provide at least 6 templates:
1) Kickoff note
2) Weekly report
3) Change request
4) Release checklist
5) ADR template
6) Minimal runbook

EXPECTED OUTPUT:
- Complete document directly pasteable into Notion/Confluence.
- No vague paragraphs: every section must contain lists, checklists, and examples.`,
		orPlaceholder(p.Name),
		orPlaceholder(p.Name),
		orPlaceholder(p.Country),
		orPlaceholder(p.Offer),
		orPlaceholder(p.ICP),
		orPlaceholder(p.Constraints),
		orPlaceholder(p.Stack),
		orPlaceholder(u.Team),
		orPlaceholder(p.Constraints),
		Placeholder,
	)
}
