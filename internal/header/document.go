package header

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk envelope around a header: the metadata block and
// the number of table rows it describes.
type Document struct {
	// Meta is the header itself.
	Meta *Header `yaml:"meta"`

	// Rows is the row count of the table the header belongs to.
	Rows int `yaml:"rows,omitempty"`
}

// LoadFile loads and parses a YAML header document from the given path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read header file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header YAML: %w", err)
	}

	if doc.Meta == nil {
		return nil, errors.New("header document has no meta block")
	}

	if doc.Rows < 0 {
		return nil, fmt.Errorf("header document has negative row count %d", doc.Rows)
	}

	return &doc, nil
}

// Marshal serializes v to YAML. v is usually a *Document, but any value
// holding headers works.
func Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// WriteFile writes v to the given path as YAML.
func WriteFile(v any, path string) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write header file %s: %w", path, err)
	}

	return nil
}
