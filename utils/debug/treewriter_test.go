package debug

import "testing"

func TestTreeWriter(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" {
		t.Fatalf("new writer is not empty: %q", tw.String())
	}

	tw.Line(0, "rule %q", "links")
	tw.Line(1, "parts")
	tw.Value(2, "element", "a")
	tw.Value(2, "combinator", " > ")
	tw.Value(1, "empty", "")

	want := "rule \"links\"\n" +
		"  parts\n" +
		"    element: \"a\"\n" +
		"    combinator: \" > \"\n" +
		"  empty: \"\"\n"
	if got := tw.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeWriter_NegativeDepth(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(-1, "top")
	if tw.String() != "top\n" {
		t.Errorf("String() = %q", tw.String())
	}
}
