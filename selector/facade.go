package selector

// Element starts a new selector with element part.
func Element(value string) *Builder { return New().Element(value) }

// ID starts a new selector with id part.
func ID(value string) *Builder { return New().ID(value) }

// Class starts a new selector with class part.
func Class(value string) *Builder { return New().Class(value) }

// Attr starts a new selector with attribute part.
func Attr(value string) *Builder { return New().Attr(value) }

// PseudoClass starts a new selector with pseudo-class part.
func PseudoClass(value string) *Builder { return New().PseudoClass(value) }

// PseudoElement starts a new selector with pseudo-element part.
func PseudoElement(value string) *Builder { return New().PseudoElement(value) }

// Combine returns a new selector joining left and right with combinator c.
func Combine(left *Builder, c Combinator, right *Builder) *Builder {
	return New().Combine(left, c, right)
}
