package selector

import "fmt"

// Specificity is the CSS specificity of a selector as [A,B,C]: ids;
// classes, attributes and pseudo-classes; elements and pseudo-elements.
type Specificity [3]int

// Less returns true if s < other (strictly), false otherwise.
func (s Specificity) Less(other Specificity) bool {
	for i := range s {
		if s[i] < other[i] {
			return true
		}
		if s[i] > other[i] {
			return false
		}
	}
	return false
}

// Add returns component-wise sum of s and other.
func (s Specificity) Add(other Specificity) Specificity {
	for i, sp := range other {
		s[i] += sp
	}
	return s
}

func (s Specificity) String() string {
	return fmt.Sprintf("%d,%d,%d", s[0], s[1], s[2])
}

// Specificity computes specificity of the selector. For combinations it is
// the sum of both sides.
func (b *Builder) Specificity() Specificity {
	if b == nil {
		return Specificity{}
	}
	if b.combination != nil {
		return b.combined
	}

	var s Specificity
	if b.present.has(KindID) {
		s[0]++
	}
	s[1] = len(b.classes) + len(b.attrs) + len(b.pseudoClasses)
	// universal selector does not count
	if b.present.has(KindElement) && b.element != "*" {
		s[2]++
	}
	if b.present.has(KindPseudoElement) {
		s[2]++
	}
	return s
}
