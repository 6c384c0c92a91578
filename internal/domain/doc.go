// Package domain defines the core types for the skill category index.
//
// This package contains the value types shared by the classification engine,
// the codecs, the repository and the HTTP layer.
//
// # Core Types
//
// Entry is one catalog item ("skill") read from the skills index. It carries the
// identifying strings the classifier looks at plus an optional reference to a
// description file.
//
// Classification is the engine output for a single entry: a primary Category, an
// optional Subcategory, and the Outcome/Rule that produced it.
//
// # Taxonomy
//
// PrimaryCategories is the fixed, ordered list of primary labels the website
// understands. A Category outside that list must never reach the output;
// NormalizeCategory remaps such values to DefaultCategory.
//
// # Index Documents
//
// SkillsIndex is the input document (a list of entries). CategoryIndex is the
// output document consumed by the website: a sorted mapping from skill ID to
// category and a sparser mapping from skill ID to subcategory.
//
// Run and ClassificationRecord describe persisted rebuilds.
//
// # Design Principles
//
// - Plain value types; CategoryIndex is built up through Set
// - No database or external dependencies
// - String-typed enumerations so values serialize as their labels
package domain
