package selector

import (
	"fmt"
	"strings"
)

// Combinator joins two selectors.
type Combinator string

const (
	Descendant Combinator = " "
	Child      Combinator = ">"
	Adjacent   Combinator = "+"
	Sibling    Combinator = "~"
)

// ParseCombinator accepts either combinator token or its name.
func ParseCombinator(s string) (Combinator, error) {
	switch strings.ToLower(s) {
	case " ", "descendant":
		return Descendant, nil
	case ">", "child":
		return Child, nil
	case "+", "adjacent", "next-sibling":
		return Adjacent, nil
	case "~", "sibling", "subsequent-sibling":
		return Sibling, nil
	}
	if strings.TrimSpace(s) == "" {
		return Descendant, nil
	}
	return "", fmt.Errorf("unknown combinator %q", s)
}

// Combine stores on b the selector "left c right". Both sides contribute
// their own rendering: a side which is itself a combination contributes its
// combined fragments, so nesting works on either side. Parts previously
// added to b are no longer rendered. Errors recorded on either side are
// carried over to b.
func (b *Builder) Combine(left *Builder, c Combinator, right *Builder) *Builder {
	if b.err != nil {
		return b
	}
	if err := left.Err(); err != nil {
		b.err = err
		return b
	}
	if err := right.Err(); err != nil {
		b.err = err
		return b
	}

	lf, rf := left.fragments(), right.fragments()
	combination := make([]string, 0, len(lf)+len(rf)+1)
	combination = append(combination, lf...)
	combination = append(combination, " "+string(c)+" ")
	combination = append(combination, rf...)

	b.combination = combination
	b.combined = left.Specificity().Add(right.Specificity())
	return b
}
