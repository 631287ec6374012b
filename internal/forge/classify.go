package forge

import (
	"regexp"
	"strings"

	"github.com/trigenys/apex-forge/internal/domain"
)

// The classifiers below share one shape: concatenate the non-empty text
// fields, lowercase, then walk an ordered rule list and return the tag
// of the first rule that matches. Vocabularies overlap ("data" and
// "dev" often co-occur), so rule order is the tie-break and must not be
// reordered. Blank input and no match both yield the UNKNOWN tag.
//
// Patterns carry accented/unaccented alternations because project
// descriptions arrive in French as often as in English.

type agencyRule struct {
	tag domain.AgencyType
	re  *regexp.Regexp
}

var agencyRules = []agencyRule{
	{domain.AgencyCybersecurity, regexp.MustCompile(`\bpentest\b|\bsoc\b|\bsiem\b|\bvuln|\biso ?27001\b|\baudit\b`)},
	{domain.AgencyDataAI, regexp.MustCompile(`\bdata\b|\bbi\b|\betl\b|\bml\b|\bai\b|\brag\b|\bmodel\b|\bvector\b|\bprompt\b`)},
	{domain.AgencyMarketingComm, regexp.MustCompile(`\bmarketing\b|\bads\b|\bseo\b|\bsocial\b|\bcommunication\b|\bcampaigns?\b|\bcampagnes?\b|\binfluence\b`)},
	{domain.AgencyDesignBranding, regexp.MustCompile(`\bui\b|\bux\b|\bdesign\b|\bfigma\b|\bbranding\b|\bbrand guidelines\b|\bcharte graphique\b`)},
	{domain.AgencyTrainingEdTech, regexp.MustCompile(`\btraining\b|\bformation\b|\bbootcamp\b|\bsyllabus\b|\bcertif\b|\bedtech\b`)},
	{domain.AgencyHRRecruiting, regexp.MustCompile(`\brecruit\b|\brecrut\b|\bstaff\b|\bmentor\b|\bmatching\b|\brh\b|\bhr\b|\btalent\b`)},
	{domain.AgencyConsultingStrategy, regexp.MustCompile(`\bstrat(é|e)g(y|ie)\b|\bpmo\b|\bprocess\b|\bgovernance\b|\bgouvernance\b|\bconsulting\b|\bconseil\b`)},
	{domain.AgencyDevESN, regexp.MustCompile(`\besn\b|\bagency\b|\bagence\b|\bdev\b|\bapplication\b|\bapi\b|\bmaintenance\b|\bdelivery\b|\bsupport\b`)},
}

type revenueRule struct {
	tag domain.RevenueModelType
	re  *regexp.Regexp
}

var revenueRules = []revenueRule{
	{domain.RevenueSaaS, regexp.MustCompile(`\bsaas\b|\bsubscription\b|\babonnement\b|\bmrr\b|\bplans?\b|\btiers?\b|\bchurn\b`)},
	{domain.RevenueRetainer, regexp.MustCompile(`\bretainer\b|\bmonthly\b|\bmensuel\b|\bsupport\b|\bmaintenance\b|\bops\b`)},
	{domain.RevenueTimeMaterial, regexp.MustCompile(`\btjm\b|\bday rate\b|\br(é|e)gie\b|\btime\b|\bmaterial\b|\bper day\b|\bjour\b`)},
	{domain.RevenueProjectFixed, regexp.MustCompile(`\bfixed\b|\bforfait\b|\bprojet\b|\bproject\b|\bdeliverable\b|\blivrable\b`)},
	{domain.RevenueHybrid, regexp.MustCompile(`\bhybrid\b|\bbuild\b.*\bmaintain\b`)},
}

type categoryRule struct {
	tag domain.ProjectCategory
	re  *regexp.Regexp
}

var categoryRules = []categoryRule{
	{domain.CategorySaaS, regexp.MustCompile(`\bsaas\b|\bmrr\b|\bsubscription\b|\babonnement\b|\bchurn\b|\bplans?\b|\btiers?\b`)},
	{domain.CategoryMarketplace, regexp.MustCompile(`\bmarketplace\b|\bmatching\b|\bmentors?\b|\bfreelances?\b|\bsupply\b.*\bdemand\b`)},
	{domain.CategoryInternalTool, regexp.MustCompile(`\binternal tool\b|\boutil interne\b|\bprocess\b|\bworkflow\b|\brpa\b|\bcrm\b|\bautomat`)},
	{domain.CategoryImpact, regexp.MustCompile(`\bngo\b|\bong\b|\bimpact\b|\bgrants?\b|\bsubvention\b|\bcommunity\b|\bcommunaut`)},
	{domain.CategoryAgency, regexp.MustCompile(`\bagency\b|\bagence\b|\besn\b|\bdev\b|\bservices?\b|\bprestations?\b|\bclients?\b|\bsow\b|\btjm\b`)},
}

// blob concatenates the non-blank fields and lowercases the result.
// An empty blob means the classifiers cannot say anything.
func blob(fields []string) string {
	kept := fields[:0:0]
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			kept = append(kept, f)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}

// ClassifyAgency tags free text with a business archetype. Pure and
// deterministic; first matching rule wins.
func ClassifyAgency(fields ...string) domain.AgencyType {
	text := blob(fields)
	if text == "" {
		return domain.AgencyUnknown
	}
	for _, r := range agencyRules {
		if r.re.MatchString(text) {
			return r.tag
		}
	}
	return domain.AgencyUnknown
}

// ClassifyRevenueModel tags free text with a revenue-model shape.
func ClassifyRevenueModel(fields ...string) domain.RevenueModelType {
	text := blob(fields)
	if text == "" {
		return domain.RevenueUnknown
	}
	for _, r := range revenueRules {
		if r.re.MatchString(text) {
			return r.tag
		}
	}
	return domain.RevenueUnknown
}

// ClassifyCategory tags free text with a coarse project category.
func ClassifyCategory(fields ...string) domain.ProjectCategory {
	text := blob(fields)
	if text == "" {
		return domain.CategoryUnknown
	}
	for _, r := range categoryRules {
		if r.re.MatchString(text) {
			return r.tag
		}
	}
	return domain.CategoryUnknown
}

// InferAgencyType classifies a project from its current text fields.
func InferAgencyType(p *domain.Project) domain.AgencyType {
	return ClassifyAgency(p.Name, p.Offer, p.Description, p.Problem, p.ICP, p.Services, p.Stack)
}

// InferAgencyTypeFromHistory classifies from the mentor transcript when
// no project fields are available (legal documents work this way).
func InferAgencyTypeFromHistory(history []*domain.ChatMessage) domain.AgencyType {
	fields := make([]string, 0, len(history))
	for _, m := range history {
		fields = append(fields, m.Text)
	}
	return ClassifyAgency(fields...)
}

// InferRevenueModel classifies the project's revenue-model shape.
func InferRevenueModel(p *domain.Project) domain.RevenueModelType {
	return ClassifyRevenueModel(p.RevenueModel, p.Pricing, p.Offer, p.Description)
}

// InferProjectCategory classifies the coarse kind of venture.
func InferProjectCategory(p *domain.Project) domain.ProjectCategory {
	return ClassifyCategory(p.Name, p.Offer, p.Problem, p.Differentiation, p.Description, p.MainGoal)
}

// ResolveAgencyType applies the precedence contract: explicit override,
// then the tag stored on the project, then classification.
func ResolveAgencyType(override domain.AgencyType, p *domain.Project) domain.AgencyType {
	if override != "" {
		return override
	}
	if p.AgencyType != "" {
		return p.AgencyType
	}
	return InferAgencyType(p)
}

// ResolveRevenueModel applies the same precedence for revenue models.
func ResolveRevenueModel(override domain.RevenueModelType, p *domain.Project) domain.RevenueModelType {
	if override != "" {
		return override
	}
	if p.RevenueModelType != "" {
		return p.RevenueModelType
	}
	return InferRevenueModel(p)
}

// ResolveCategory applies the same precedence for project categories.
func ResolveCategory(override domain.ProjectCategory, p *domain.Project) domain.ProjectCategory {
	if override != "" {
		return override
	}
	if p.Category != "" {
		return p.Category
	}
	return InferProjectCategory(p)
}
