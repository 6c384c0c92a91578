package codec

import (
	"fmt"
	"io"

	"skillindex/internal/domain"
)

// Importer interface for reading a skills index
type Importer interface {
	Parse(r io.Reader) (*domain.SkillsIndex, error)
	Format() string
}

// Exporter interface for writing a category index
type Exporter interface {
	Export(idx *domain.CategoryIndex, w io.Writer) error
	Format() string
}

// ForFormat returns the exporter for a format identifier
func ForFormat(format string) (Exporter, error) {
	switch format {
	case "", "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
