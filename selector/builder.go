package selector

import "strings"

// Builder accumulates selector parts and renders them into a selector
// string. Mutators return the same builder so calls can be chained.
//
// Errors are sticky: the first failed mutation is recorded, every following
// mutation is ignored and Stringify reports the error. A failed builder is
// meant to be discarded.
type Builder struct {
	element       string
	id            string
	classes       []string
	attrs         []string
	pseudoClasses []string
	pseudoElement string

	// combination holds pre-rendered fragments of a combined selector, when
	// set parts above are not rendered
	combination []string
	combined    Specificity

	present kindSet
	highest Kind
	err     error
}

// New returns empty builder.
func New() *Builder {
	return &Builder{}
}

// Element sets element (type) selector, e.g. "div".
func (b *Builder) Element(value string) *Builder {
	if b.accept(KindElement) {
		b.element = value
	}
	return b
}

// ID sets id selector, value is rendered as "#value".
func (b *Builder) ID(value string) *Builder {
	if b.accept(KindID) {
		b.id = "#" + value
	}
	return b
}

// Class adds class selector, value is rendered as ".value".
func (b *Builder) Class(value string) *Builder {
	if b.accept(KindClass) {
		b.classes = append(b.classes, "."+value)
	}
	return b
}

// Attr adds attribute selector, value is rendered as "[value]".
func (b *Builder) Attr(value string) *Builder {
	if b.accept(KindAttribute) {
		b.attrs = append(b.attrs, "["+value+"]")
	}
	return b
}

// PseudoClass adds pseudo-class, value is rendered as ":value".
func (b *Builder) PseudoClass(value string) *Builder {
	if b.accept(KindPseudoClass) {
		b.pseudoClasses = append(b.pseudoClasses, ":"+value)
	}
	return b
}

// PseudoElement sets pseudo-element, value is rendered as "::value".
func (b *Builder) PseudoElement(value string) *Builder {
	if b.accept(KindPseudoElement) {
		b.pseudoElement = "::" + value
	}
	return b
}

// Add dispatches to the mutator for kind k. Unknown kinds are ignored.
func (b *Builder) Add(k Kind, value string) *Builder {
	switch k {
	case KindElement:
		return b.Element(value)
	case KindID:
		return b.ID(value)
	case KindClass:
		return b.Class(value)
	case KindAttribute:
		return b.Attr(value)
	case KindPseudoClass:
		return b.PseudoClass(value)
	case KindPseudoElement:
		return b.PseudoElement(value)
	}
	return b
}

// accept checks whether part of kind k may be added and records it.
// Duplicates are detected before ordering.
func (b *Builder) accept(k Kind) bool {
	if b.err != nil {
		return false
	}
	if k.IsUnique() && b.present.has(k) {
		b.err = &DuplicateError{Kind: k}
		return false
	}
	// all kinds already present were validated, so comparing with the highest
	// one is the same as comparing with each of them
	if b.present != 0 && k < b.highest {
		b.err = &OrderError{Kind: k, After: b.highest}
		return false
	}
	b.present = b.present.with(k)
	if k > b.highest {
		b.highest = k
	}
	return true
}

// Err returns the first error recorded by a mutation, if any.
func (b *Builder) Err() error {
	if b == nil {
		return nil
	}
	return b.err
}

// IsCombined returns true if builder renders a combination of two selectors.
func (b *Builder) IsCombined() bool {
	return b != nil && b.combination != nil
}

// fragments returns rendered pieces of the selector in output order.
func (b *Builder) fragments() []string {
	if b == nil {
		return nil
	}
	if b.combination != nil {
		return b.combination
	}
	out := make([]string, 0, 3+len(b.classes)+len(b.attrs)+len(b.pseudoClasses))
	if b.present.has(KindElement) {
		out = append(out, b.element)
	}
	if b.present.has(KindID) {
		out = append(out, b.id)
	}
	out = append(out, b.classes...)
	out = append(out, b.attrs...)
	out = append(out, b.pseudoClasses...)
	if b.present.has(KindPseudoElement) {
		out = append(out, b.pseudoElement)
	}
	return out
}

// Stringify renders the selector. Combined selectors are rendered from
// their stored fragments, otherwise parts are rendered in kind order.
func (b *Builder) Stringify() (string, error) {
	if err := b.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// String renders the selector ignoring any recorded error.
func (b *Builder) String() string {
	return strings.Join(b.fragments(), "")
}
