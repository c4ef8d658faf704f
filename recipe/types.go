// Package recipe builds stylesheets from declarative YAML descriptions of
// selectors.
//
// A recipe lists rules, each rule has a selector made either of parts or of a
// combination of two nested selectors:
//
//	version: 1
//	rules:
//	  - name: png-links
//	    selector:
//	      parts:
//	        - element: a
//	        - attr: 'href$=".png"'
//	        - pseudo_class: focus
//	    properties:
//	      outline: none
//	  - name: table-rows
//	    media: print
//	    selector:
//	      combine:
//	        left: {parts: [{element: table}]}
//	        combinator: ">"
//	        right: {parts: [{element: tr}]}
package recipe

import (
	"errors"
	"fmt"

	"selkit/selector"
)

// Recipe is a single recipe document.
type Recipe struct {
	Version int        `yaml:"version" validate:"eq=1"`
	Rules   []RuleSpec `yaml:"rules" validate:"min=1,dive"`
}

// RuleSpec describes one stylesheet rule.
type RuleSpec struct {
	Name       string            `yaml:"name"`
	Media      string            `yaml:"media,omitempty"`
	Selector   *SelectorSpec     `yaml:"selector" validate:"required"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

// SelectorSpec is either a list of parts or a combination.
type SelectorSpec struct {
	Normalize bool         `yaml:"normalize,omitempty"`
	Parts     []Part       `yaml:"parts,omitempty"`
	Combine   *CombineSpec `yaml:"combine,omitempty"`
}

// CombineSpec joins two selectors with a combinator.
type CombineSpec struct {
	Left       *SelectorSpec `yaml:"left"`
	Combinator string        `yaml:"combinator"`
	Right      *SelectorSpec `yaml:"right"`
}

// Part holds exactly one selector part.
type Part struct {
	Element       string `yaml:"element,omitempty"`
	ID            string `yaml:"id,omitempty"`
	Class         string `yaml:"class,omitempty"`
	Attr          string `yaml:"attr,omitempty"`
	PseudoClass   string `yaml:"pseudo_class,omitempty"`
	PseudoElement string `yaml:"pseudo_element,omitempty"`
}

var errPartKind = errors.New("part must have exactly one of element, id, class, attr, pseudo_class, pseudo_element")

// Kind returns selector kind and value of the part.
func (p Part) Kind() (selector.Kind, string, error) {
	var (
		kind  selector.Kind
		value string
		count int
	)
	for k, v := range map[selector.Kind]string{
		selector.KindElement:       p.Element,
		selector.KindID:            p.ID,
		selector.KindClass:         p.Class,
		selector.KindAttribute:     p.Attr,
		selector.KindPseudoClass:   p.PseudoClass,
		selector.KindPseudoElement: p.PseudoElement,
	} {
		if v != "" {
			kind, value = k, v
			count++
		}
	}
	if count != 1 {
		return 0, "", fmt.Errorf("%w, got %d", errPartKind, count)
	}
	return kind, value, nil
}
