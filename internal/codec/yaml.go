package codec

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// UnmarshalYAMLStrict rejects unknown fields in the input.
func UnmarshalYAMLStrict(data []byte, v any) error {
	if err := validateInput(data, v, MaxInputSize); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("codec: %w", err)
	}
	return nil
}

// MarshalYAML encodes v as YAML.
func MarshalYAML(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	return out, nil
}

// YAMLToJSON converts a YAML document to JSON so block input can share the
// JSON decoding path and its number handling.
func YAMLToJSON(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrNilData
	}
	if err := CheckDocumentSize(data); err != nil {
		return nil, err
	}
	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	return out, nil
}
