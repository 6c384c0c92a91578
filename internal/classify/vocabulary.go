package classify

// Keyword vocabularies used by the cascade. Matching is always on whole
// tokens unless a list is explicitly named as phrases.

var (
	docFormatTokens = newSet(
		"pdf", "doc", "docx", "ppt", "pptx", "xls", "xlsx",
		"word", "powerpoint", "excel", "epub", "latex", "tex", "ocr",
	)
	docFormatPhrases = []string{"/pdf", "/docx", "/pptx", "/xlsx"}

	// document nouns are too generic on their own and need an action phrase
	docNounTokens    = newSet("document", "documents", "slides", "spreadsheet")
	docActionPhrases = []string{"convert", "extract", "parse", "merge", "annotat", "summariz"}
)

var (
	seoTokens           = newSet("seo", "serp")
	seoAnalyticsPhrases = []string{"audit", "analy", "report", "keyword"}
)

var (
	securityTokens = newSet(
		"security", "secure", "vuln", "vulnerability", "pentest", "pentesting",
		"threat", "forensic", "forensics", "malware", "exploit",
		"xss", "csrf", "sqli", "rce", "cve",
		"crypto", "cryptography",
		"oauth", "jwt", "auth", "authentication", "authorization",
		"sast", "dast", "appsec", "devsecops", "incident", "response",
		"solana", "mev", "wallet",
	)
	securityPhrases = []string{
		"sql-injection", "audit-website", "smart-contract", "smart-contracts", "web3-security",
	}

	web3Tokens     = newSet("solana", "mev", "wallet", "web3", "ethereum")
	forensicTokens = newSet("forensic", "forensics")
	pentestTokens  = newSet("pentest", "pentesting", "exploit")
	identityTokens = newSet("auth", "oauth", "jwt", "authentication", "authorization")
)

var (
	creativeStrongTokens = newSet(
		"ui", "ux", "figma", "logo", "branding", "illustration",
		"video", "audio", "music", "remotion", "canvas", "animation", "typography",
	)
	creativeSoftTokens = newSet(
		"design", "image", "images", "color", "colors", "visual", "graphics", "graphic",
	)
	// "design" is overloaded (system design, database design); it only counts
	// next to one of these.
	creativeHintsWithoutDesign = without(union(creativeStrongTokens, creativeSoftTokens), "design")
)

var (
	writingTokens = newSet(
		"copywriting", "blog", "newsletter", "email", "resume", "cv", "cover", "coverletter",
		"proposal", "grammar", "proofread", "proofreading", "rewrite", "summarize", "summary",
		"translation", "translate", "translated", "speech", "meeting", "meetingnotes",
		"docs", "documentation",
	)
	writingPhrases    = []string{"cover-letter", "meeting-notes"}
	translationTokens = newSet("translate", "translation")
)

var (
	businessTokens = newSet(
		"marketing", "sales", "growth", "pricing", "crm", "funnel",
		"ads", "adwords", "tiktok", "linkedin", "twitter", "campaign", "branding",
	)
	businessPhrases = []string{"facebook-ads"}
)

var (
	dataTokens = newSet(
		"data", "analysis", "analytics", "dashboard", "visualization", "statistics",
		"forecast", "timeseries", "etl", "warehouse", "bigquery", "snowflake", "dbt",
		"pandas", "numpy", "jupyter", "spark", "kafka", "bi",
	)
	dataPhrases = []string{"time-series"}

	sqlTokens           = newSet("sql", "postgres", "postgresql", "mysql", "sqlite")
	dataScienceTokens   = newSet("pandas", "numpy", "jupyter")
	dataWarehouseTokens = newSet("bigquery", "snowflake", "dbt", "warehouse")
)

var (
	collaborationTokens = newSet(
		"collaboration", "agile", "scrum", "jira", "linear", "trello", "asana",
		"notion", "confluence", "slack", "teams", "discord",
	)
	collaborationPhrases = []string{"project-management"}
)

var (
	productivityTokens = newSet(
		"productivity", "workflow", "notes", "note", "todo", "task", "planning", "plan",
		"calendar", "pomodoro", "brainstorm", "organize", "focus", "habit", "routine",
	)
	productivityPhrases = []string{"time-management"}
)

var (
	devTestingTokens  = newSet("playwright", "cypress", "selenium", "jest", "vitest", "pytest", "axe")
	devOpsTokens      = newSet("docker", "kubernetes", "k8s", "terraform", "ansible", "helm", "nix")
	devDatabaseTokens = newSet("postgres", "postgresql", "mysql", "sqlite", "mongodb", "redis")
	devFrontendTokens = newSet("react", "next", "nextjs", "vue", "svelte", "angular", "tailwind")
	devAITokens       = newSet("llm", "prompt", "mcp")

	devTokens = union(
		// languages
		newSet(
			"python", "py", "javascript", "js", "typescript", "ts", "node", "nodejs",
			"go", "golang", "rust", "java", "kotlin", "swift", "objectivec", "objc",
			"c", "cpp", "cxx", "csharp", "dotnet", "php", "ruby", "rails",
		),
		// web frameworks and bundlers
		devFrontendTokens,
		newSet("webpack", "vite"),
		// testing and accessibility
		devTestingTokens,
		newSet("test", "testing", "a11y", "accessibility", "wcag"),
		// mobile
		newSet("ios", "android", "xcode", "simulator"),
		// devops and infrastructure
		devOpsTokens,
		newSet("tmux", "orbstack", "ci", "cd", "github", "git"),
		// data stores
		devDatabaseTokens,
		// cloud
		newSet("aws", "gcp", "azure", "cloudflare", "netlify", "supabase"),
		// ai engineering
		devAITokens,
		newSet("prompts"),
		// general engineering
		newSet(
			"api", "sdk", "cli", "library", "framework", "backend", "frontend",
			"observability", "logging", "tracing", "metrics", "debug", "debugging",
		),
	)
	devPhrases = []string{"best-practices", "bestpractices", "code-review", "codegen"}
)
