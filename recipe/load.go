package recipe

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"
)

// Parse decodes and validates recipe document. Unknown fields are errors.
func Parse(data []byte) (*Recipe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	r := &Recipe{}
	if err := dec.Decode(r); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	if err := gencfg.Validate(r); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}
	return r, nil
}

// Load reads recipe from file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
