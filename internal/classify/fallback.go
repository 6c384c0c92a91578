package classify

import "skillindex/internal/domain"

// fallbackRules mirror a subset of the cascade's signals against description
// text. They carry no subcategories: a description excerpt is too weak a
// signal for finer labels.
var fallbackRules = []rule{
	{
		name:    "description-document",
		primary: domain.CategoryDocumentProcessing,
		match: tokensOrPhrases(
			newSet("pdf", "docx", "pptx", "xlsx", "spreadsheet", "presentation"),
			"powerpoint", "spreadsheet",
		),
	},
	{
		name:    "description-marketing",
		primary: domain.CategoryBusinessMarketing,
		match:   tokensOrPhrases(newSet("seo", "marketing", "campaign", "sales")),
	},
	{
		name:    "description-security",
		primary: domain.CategorySecurity,
		match: tokensOrPhrases(
			newSet("security", "vulnerability", "pentest", "forensics"),
			"sql-injection", "smart contract", "audit-website",
		),
	},
	{
		// descriptions of dev skills often say "writing code"; only explicit
		// writing tasks count here
		name:    "description-writing",
		primary: domain.CategoryCommunicationWriting,
		match: tokensOrPhrases(
			newSet("copywriting", "proofread", "proofreading", "grammar", "translate", "translation", "resume"),
		),
	},
	{
		name:    "description-creative",
		primary: domain.CategoryCreativeMedia,
		match: tokensOrPhrases(
			newSet("ui", "ux", "figma", "video", "audio", "remotion", "canvas"),
			"user interface", "visual design",
		),
	},
	{
		name:    "description-data",
		primary: domain.CategoryDataAnalysis,
		match:   tokensOrPhrases(newSet("data", "analysis", "analytics", "pandas", "jupyter", "dashboard")),
	},
	{
		name:    "description-collaboration",
		primary: domain.CategoryCollaboration,
		match:   tokensOrPhrases(newSet("jira", "slack", "notion", "collaboration", "scrum")),
	},
	{
		name:    "description-productivity",
		primary: domain.CategoryProductivity,
		match:   tokensOrPhrases(newSet("productivity", "workflow", "todo", "notes", "planning", "pomodoro")),
	},
	{
		name:    "description-development",
		primary: domain.CategoryDevelopmentTools,
		match: tokensOrPhrases(
			newSet("playwright", "pytest", "jest", "typescript", "react", "docker", "kubernetes", "ios", "android"),
		),
	},
}

// classifyDescription runs the fallback rules over description text.
// Empty text never matches.
func classifyDescription(text string) (domain.Classification, bool) {
	if text == "" {
		return domain.Classification{}, false
	}
	return firstMatch(fallbackRules, textFeatures(text))
}
