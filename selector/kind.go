// Package selector assembles CSS selector strings from typed parts and
// validates that parts are added only once where required and in the order
// CSS expects them: element, id, class, attribute, pseudo-class,
// pseudo-element.
package selector

// Kind identifies a category of selector part. Values are declared in the
// order parts must appear inside a single compound selector.
type Kind int

const (
	KindElement       Kind = iota // div, a, *
	KindID                        // #main
	KindClass                     // .container
	KindAttribute                 // [href$=".png"]
	KindPseudoClass               // :focus
	KindPseudoElement             // ::before

	kindCount = int(KindPseudoElement) + 1
)

var kindNames = [kindCount]string{
	KindElement:       "element",
	KindID:            "id",
	KindClass:         "class",
	KindAttribute:     "attribute",
	KindPseudoClass:   "pseudo-class",
	KindPseudoElement: "pseudo-element",
}

// String returns the human readable name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IsUnique returns true for kinds allowed at most once per selector.
func (k Kind) IsUnique() bool {
	return k == KindElement || k == KindID || k == KindPseudoElement
}

// Kinds returns all kinds in their required order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := KindElement; int(k) < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// kindSet is a bit set of kinds present in a builder.
type kindSet uint8

func (s kindSet) has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

func (s kindSet) with(k Kind) kindSet {
	return s | 1<<uint(k)
}
