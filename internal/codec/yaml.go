package codec

import (
	"fmt"
	"io"

	"skillindex/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec exports the category index as YAML
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Export exports the category index to YAML
func (c *YAMLCodec) Export(idx *domain.CategoryIndex, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(idx); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
