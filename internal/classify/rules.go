package classify

import (
	"strings"

	"skillindex/internal/domain"
)

// rule is one entry of an ordered cascade: a predicate over the entry's
// features, the primary category it assigns, and an optional subcategory
// selector evaluated only after the predicate matched.
type rule struct {
	name    string
	primary domain.Category
	match   func(f Features) bool
	sub     func(f Features) domain.Subcategory
}

func (r rule) apply(f Features) (domain.Classification, bool) {
	if !r.match(f) {
		return domain.Classification{}, false
	}
	c := domain.Classification{Primary: r.primary, Rule: r.name}
	if r.sub != nil {
		c.Subcategory = r.sub(f)
	}
	return c, true
}

// firstMatch evaluates rules strictly in order and stops at the first match
func firstMatch(rules []rule, f Features) (domain.Classification, bool) {
	for _, r := range rules {
		if c, ok := r.apply(f); ok {
			return c, true
		}
	}
	return domain.Classification{}, false
}

// always returns a selector that yields a fixed subcategory
func always(s domain.Subcategory) func(Features) domain.Subcategory {
	return func(Features) domain.Subcategory { return s }
}

func sourceContains(needles ...string) func(Features) bool {
	return func(f Features) bool {
		for _, n := range needles {
			if strings.Contains(f.Source, n) {
				return true
			}
		}
		return false
	}
}

func tokensOrPhrases(tokens TokenSet, phrases ...string) func(Features) bool {
	return func(f Features) bool {
		return f.Tokens.Intersects(tokens) || f.ContainsAny(phrases...)
	}
}

// cascade is the ordered rule list for an entry's identifying strings.
// Order is the tie-break: an entry matching several rules takes the first.
var cascade = []rule{
	// Repo-level hints outrank anything in the title or identifier.
	{
		name:    "repo-marketing",
		primary: domain.CategoryBusinessMarketing,
		match:   sourceContains("marketingskills", "marketing"),
		sub:     always(domain.SubcategoryMarketing),
	},
	{
		name:    "repo-web3-security",
		primary: domain.CategorySecurity,
		match:   sourceContains("awesome-web3-security", "web3"),
		sub:     always(domain.SubcategoryWeb3Security),
	},
	{
		name:    "repo-ai-security",
		primary: domain.CategorySecurity,
		match:   sourceContains("awesome-ai-security"),
		sub:     always(domain.SubcategoryAISecurity),
	},

	{
		name:    "document-format",
		primary: domain.CategoryDocumentProcessing,
		match:   tokensOrPhrases(docFormatTokens, docFormatPhrases...),
	},
	{
		name:    "document-action",
		primary: domain.CategoryDocumentProcessing,
		match: func(f Features) bool {
			return f.Tokens.Intersects(docNounTokens) && f.ContainsAny(docActionPhrases...)
		},
	},

	// SEO has to be settled before security ("audit") and marketing.
	{
		name:    "seo-analytics",
		primary: domain.CategoryDataAnalysis,
		match: func(f Features) bool {
			return f.Tokens.Intersects(seoTokens) && f.ContainsAny(seoAnalyticsPhrases...)
		},
		sub: always(domain.SubcategorySEO),
	},
	{
		name:    "seo-marketing",
		primary: domain.CategoryBusinessMarketing,
		match: func(f Features) bool {
			return f.Tokens.Intersects(seoTokens)
		},
		sub: always(domain.SubcategorySEO),
	},

	{
		name:    "security",
		primary: domain.CategorySecurity,
		match:   tokensOrPhrases(securityTokens, securityPhrases...),
		sub:     securitySubcategory,
	},
	{
		name:    "creative-media",
		primary: domain.CategoryCreativeMedia,
		match: func(f Features) bool {
			if f.Tokens.Intersects(creativeStrongTokens) {
				return true
			}
			return f.Tokens.Has("design") && f.Tokens.Intersects(creativeHintsWithoutDesign)
		},
	},
	{
		// whole tokens only: "playwright" must not read as "write"
		name:    "communication-writing",
		primary: domain.CategoryCommunicationWriting,
		match:   tokensOrPhrases(writingTokens, writingPhrases...),
		sub: func(f Features) domain.Subcategory {
			if f.Tokens.Intersects(translationTokens) {
				return domain.SubcategoryTranslation
			}
			return domain.SubcategoryNone
		},
	},
	{
		name:    "business-marketing",
		primary: domain.CategoryBusinessMarketing,
		match:   tokensOrPhrases(businessTokens, businessPhrases...),
	},
	{
		name:    "data-analysis",
		primary: domain.CategoryDataAnalysis,
		match:   tokensOrPhrases(dataTokens, dataPhrases...),
		sub:     dataSubcategory,
	},
	{
		name:    "collaboration",
		primary: domain.CategoryCollaboration,
		match:   tokensOrPhrases(collaborationTokens, collaborationPhrases...),
	},
	{
		name:    "productivity",
		primary: domain.CategoryProductivity,
		match:   tokensOrPhrases(productivityTokens, productivityPhrases...),
	},

	// Broadest vocabulary last; many skills mention "api" or "git" in passing.
	{
		name:    "development-tools",
		primary: domain.CategoryDevelopmentTools,
		match:   tokensOrPhrases(devTokens, devPhrases...),
		sub:     devSubcategory,
	},
}

func securitySubcategory(f Features) domain.Subcategory {
	switch {
	case f.Tokens.Intersects(web3Tokens) || f.ContainsAny("smart-contract"):
		return domain.SubcategoryWeb3Security
	case f.Tokens.Intersects(forensicTokens):
		return domain.SubcategoryForensics
	case f.Tokens.Intersects(pentestTokens):
		return domain.SubcategoryPentesting
	case f.Tokens.Intersects(identityTokens):
		return domain.SubcategoryIdentityAccess
	}
	return domain.SubcategoryNone
}

func dataSubcategory(f Features) domain.Subcategory {
	switch {
	case f.Tokens.Intersects(sqlTokens):
		return domain.SubcategorySQL
	case f.Tokens.Intersects(dataScienceTokens):
		return domain.SubcategoryDataScience
	case f.Tokens.Intersects(dataWarehouseTokens):
		return domain.SubcategoryDataWarehouse
	}
	return domain.SubcategoryNone
}

func devSubcategory(f Features) domain.Subcategory {
	switch {
	case f.Tokens.Intersects(devTestingTokens):
		return domain.SubcategoryTesting
	case f.Tokens.Intersects(devOpsTokens):
		return domain.SubcategoryDevOps
	case f.Tokens.Intersects(devDatabaseTokens):
		return domain.SubcategoryDatabases
	case f.Tokens.Intersects(devFrontendTokens):
		return domain.SubcategoryFrontend
	case f.Tokens.Intersects(devAITokens):
		return domain.SubcategoryAIEngineering
	}
	return domain.SubcategoryNone
}
