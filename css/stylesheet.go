// Package css holds a minimal stylesheet model used to write generated
// rules out as CSS text.
package css

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   string            // Rendered selector text
	Properties map[string]string // Property name -> raw value
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Comment, Rule or MediaBlock is non-nil.
type StylesheetItem struct {
	Comment    *string     // A /* comment */
	Rule       *Rule       // A plain rule (selector + properties)
	MediaBlock *MediaBlock // A @media block containing nested rules
}

// Stylesheet is an ordered list of stylesheet items.
type Stylesheet struct {
	Items []StylesheetItem
}

// AddComment appends comment item.
func (s *Stylesheet) AddComment(text string) {
	s.Items = append(s.Items, StylesheetItem{Comment: &text})
}

// AddRule appends a rule. When media is not empty the rule goes into a
// @media block, consecutive rules with the same query share one block.
func (s *Stylesheet) AddRule(rule Rule, media string) {
	if media == "" {
		s.Items = append(s.Items, StylesheetItem{Rule: &rule})
		return
	}
	if n := len(s.Items); n > 0 {
		if last := s.Items[n-1].MediaBlock; last != nil && last.Query == media {
			last.Rules = append(last.Rules, rule)
			return
		}
	}
	s.Items = append(s.Items, StylesheetItem{MediaBlock: &MediaBlock{Query: media, Rules: []Rule{rule}}})
}

// Rules returns all rules in source order including ones nested in @media
// blocks.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			rules = append(rules, *item.Rule)
		case item.MediaBlock != nil:
			rules = append(rules, item.MediaBlock.Rules...)
		}
	}
	return rules
}

// RulesBySelector returns all rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, rule := range s.Rules() {
		if rule.Selector == selector {
			matches = append(matches, rule)
		}
	}
	return matches
}

// Merge appends all items of other.
func (s *Stylesheet) Merge(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Items = append(s.Items, other.Items...)
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Comment != nil:
			n, err = fmt.Fprintf(w, "/* %s */\n", escapeComment(*item.Comment))
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// escapeComment makes sure comment text cannot terminate the comment early.
func escapeComment(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}

// writeRule writes a single CSS rule to w, every line prefixed with indent.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties, indent+"  ")
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]string, indent string) (int, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		n, err := fmt.Fprintf(w, "%s%s: %s;\n", indent, name, props[name])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}

		// Blank line between rules in a media block (except after last)
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
