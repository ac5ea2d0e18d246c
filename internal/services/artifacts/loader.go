package artifacts

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// decodeStrict parses YAML (or JSON, a YAML subset) rejecting unknown keys.
func decodeStrict(data []byte, out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty document")
		}
		return err
	}
	return nil
}

// ParsePreprocessor decodes and validates a preprocessor document.
func ParsePreprocessor(data []byte) (*Preprocessor, error) {
	var spec PreprocessorSpec
	if err := decodeStrict(data, &spec); err != nil {
		return nil, fmt.Errorf("parse preprocessor: %w", err)
	}
	return NewPreprocessor(spec)
}

// ParseModel decodes and validates a model document.
func ParseModel(data []byte) (Model, error) {
	var spec ModelSpec
	if err := decodeStrict(data, &spec); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	return NewModel(spec)
}
