package domain

// Category is a primary taxonomy label
type Category string

const (
	CategoryDocumentProcessing   Category = "document-processing"
	CategoryDevelopmentTools     Category = "development-tools"
	CategoryDataAnalysis         Category = "data-analysis"
	CategoryBusinessMarketing    Category = "business-marketing"
	CategoryCommunicationWriting Category = "communication-writing"
	CategoryCreativeMedia        Category = "creative-media"
	CategoryProductivity         Category = "productivity"
	CategoryCollaboration        Category = "collaboration"
	CategorySecurity             Category = "security"
)

// DefaultCategory is assigned when nothing matches. Most skills are developer adjacent.
const DefaultCategory = CategoryDevelopmentTools

// PrimaryCategories is the closed taxonomy in display order.
// Shipped alongside the mappings so consumers do not hardcode it.
var PrimaryCategories = []Category{
	CategoryDocumentProcessing,
	CategoryDevelopmentTools,
	CategoryDataAnalysis,
	CategoryBusinessMarketing,
	CategoryCommunicationWriting,
	CategoryCreativeMedia,
	CategoryProductivity,
	CategoryCollaboration,
	CategorySecurity,
}

// IsValid reports whether c is a member of PrimaryCategories
func (c Category) IsValid() bool {
	for _, known := range PrimaryCategories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the label
func (c Category) String() string {
	return string(c)
}

// NormalizeCategory returns c if it belongs to the taxonomy, DefaultCategory otherwise.
// Legacy labels (e.g. the removed "other" bucket) end up here.
func NormalizeCategory(c Category) Category {
	if c.IsValid() {
		return c
	}
	return DefaultCategory
}

// ParseCategory converts a label to a Category, reporting whether it is known
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.IsValid()
}

// CategoryLabels returns the taxonomy as plain strings
func CategoryLabels() []string {
	labels := make([]string, len(PrimaryCategories))
	for i, c := range PrimaryCategories {
		labels[i] = string(c)
	}
	return labels
}

// Subcategory is an optional finer-grained label. Empty means none.
type Subcategory string

const (
	SubcategoryNone           Subcategory = ""
	SubcategoryMarketing      Subcategory = "marketing"
	SubcategoryWeb3Security   Subcategory = "web3-security"
	SubcategoryAISecurity     Subcategory = "ai-security"
	SubcategorySEO            Subcategory = "seo"
	SubcategoryForensics      Subcategory = "forensics"
	SubcategoryPentesting     Subcategory = "pentesting"
	SubcategoryIdentityAccess Subcategory = "identity-access"
	SubcategoryTranslation    Subcategory = "translation"
	SubcategorySQL            Subcategory = "sql"
	SubcategoryDataScience    Subcategory = "data-science"
	SubcategoryDataWarehouse  Subcategory = "data-warehouse"
	SubcategoryTesting        Subcategory = "testing"
	SubcategoryDevOps         Subcategory = "devops"
	SubcategoryDatabases      Subcategory = "databases"
	SubcategoryFrontend       Subcategory = "frontend"
	SubcategoryAIEngineering  Subcategory = "ai-engineering"
)
