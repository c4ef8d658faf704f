package css

import (
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// IsIdent returns true if s is exactly one CSS identifier token, which is
// what element names, ids and class names are expected to be.
func IsIdent(s string) bool {
	if len(s) == 0 {
		return false
	}
	l := css.NewLexer(parse.NewInputString(s))
	tt, data := l.Next()
	if tt != css.IdentToken || len(data) != len(s) {
		return false
	}
	tt, _ = l.Next()
	return tt == css.ErrorToken
}
