// Package serial wraps JSON and YAML encoding of arbitrary values to and
// from strings.
package serial

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// ToJSON serializes v to JSON text.
func ToJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("unable to serialize to json: %w", err)
	}
	return string(data), nil
}

// FromJSON deserializes JSON text into a new value of type T.
func FromJSON[T any](data string) (*T, error) {
	v := new(T)
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return nil, fmt.Errorf("unable to deserialize json: %w", err)
	}
	return v, nil
}

// FromJSONWith deserializes JSON text on top of proto: fields absent from
// data keep proto values. proto itself is not modified unless it holds
// references (maps, slices, pointers).
func FromJSONWith[T any](proto T, data string) (T, error) {
	v := proto
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return proto, fmt.Errorf("unable to deserialize json: %w", err)
	}
	return v, nil
}

// ToYAML serializes v to YAML text.
func ToYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("unable to serialize to yaml: %w", err)
	}
	return string(data), nil
}

// FromYAML deserializes YAML text into a new value of type T. Unknown
// fields are rejected.
func FromYAML[T any](data string) (*T, error) {
	v := new(T)
	dec := yaml.NewDecoder(bytes.NewReader([]byte(data)))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("unable to deserialize yaml: %w", err)
	}
	return v, nil
}

// Indent reformats JSON text with two space indentation.
func Indent(data string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(data)), "", "  "); err != nil {
		return "", fmt.Errorf("unable to indent json: %w", err)
	}
	return buf.String(), nil
}
