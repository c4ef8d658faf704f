package recipe

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"selkit/selector"
)

func newTestRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	r, err := NewRenderer(zaptest.NewLogger(t), opts)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func parts(ps ...Part) *SelectorSpec {
	return &SelectorSpec{Parts: ps}
}

func TestPart_Kind(t *testing.T) {
	tests := []struct {
		part      Part
		wantKind  selector.Kind
		wantValue string
		wantErr   bool
	}{
		{Part{Element: "a"}, selector.KindElement, "a", false},
		{Part{ID: "main"}, selector.KindID, "main", false},
		{Part{Class: "x"}, selector.KindClass, "x", false},
		{Part{Attr: "href"}, selector.KindAttribute, "href", false},
		{Part{PseudoClass: "hover"}, selector.KindPseudoClass, "hover", false},
		{Part{PseudoElement: "after"}, selector.KindPseudoElement, "after", false},
		{Part{}, 0, "", true},
		{Part{Element: "a", Class: "b"}, 0, "", true},
	}
	for _, tt := range tests {
		kind, value, err := tt.part.Kind()
		if (err != nil) != tt.wantErr {
			t.Errorf("Kind(%+v) error = %v, wantErr %v", tt.part, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, errPartKind) {
				t.Errorf("Kind(%+v) error = %v, want errPartKind", tt.part, err)
			}
			continue
		}
		if kind != tt.wantKind || value != tt.wantValue {
			t.Errorf("Kind(%+v) = %v %q, want %v %q", tt.part, kind, value, tt.wantKind, tt.wantValue)
		}
	}
}

func TestRenderer_BuildSelector(t *testing.T) {
	r := newTestRenderer(t, Options{})

	tests := []struct {
		name string
		spec *SelectorSpec
		want string
	}{
		{"parts", parts(Part{ID: "main"}, Part{Class: "container"}, Part{Class: "editable"}), "#main.container.editable"},
		{"attr", parts(Part{Element: "a"}, Part{Attr: `href$=".png"`}, Part{PseudoClass: "focus"}), `a[href$=".png"]:focus`},
		{"combine by name", &SelectorSpec{Combine: &CombineSpec{
			Left:       parts(Part{Element: "ul"}),
			Combinator: "child",
			Right:      parts(Part{Element: "li"}),
		}}, "ul > li"},
		{"combine left nested", &SelectorSpec{Combine: &CombineSpec{
			Left: &SelectorSpec{Combine: &CombineSpec{
				Left:       parts(Part{Element: "h1"}),
				Combinator: "+",
				Right:      parts(Part{Element: "p"}),
			}},
			Combinator: "~",
			Right:      parts(Part{Class: "note"}),
		}}, "h1 + p ~ .note"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := r.BuildSelector(tt.spec)
			if err != nil {
				t.Fatalf("BuildSelector() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildSelector() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderer_BuildSelectorErrors(t *testing.T) {
	r := newTestRenderer(t, Options{})

	tests := []struct {
		name   string
		spec   *SelectorSpec
		target error
		text   string
	}{
		{"nil", nil, nil, "selector is empty"},
		{"no parts", &SelectorSpec{}, nil, "no parts"},
		{"both", &SelectorSpec{Parts: []Part{{Element: "a"}}, Combine: &CombineSpec{}}, nil, "both parts and combine"},
		{"bad part", parts(Part{Element: "a", ID: "b"}), errPartKind, "part 1"},
		{"duplicate", parts(Part{Element: "div"}, Part{Element: "div"}), selector.ErrDuplicate, `part 2 (element "div")`},
		{"order", parts(Part{Class: "x"}, Part{Element: "div"}), selector.ErrOrder, "part 2"},
		{"bad combinator", &SelectorSpec{Combine: &CombineSpec{Left: parts(Part{Element: "a"}), Combinator: "|", Right: parts(Part{Element: "b"})}}, nil, "unknown combinator"},
		{"bad right", &SelectorSpec{Combine: &CombineSpec{Left: parts(Part{Element: "a"}), Combinator: ">", Right: parts(Part{ID: "a"}, Part{ID: "b"})}}, selector.ErrDuplicate, "right: part 2"},
		{"missing left", &SelectorSpec{Combine: &CombineSpec{Combinator: ">", Right: parts(Part{Element: "b"})}}, nil, "left: selector is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := r.BuildSelector(tt.spec)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
			if !strings.Contains(err.Error(), tt.text) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.text)
			}
		})
	}
}

func TestRenderer_Normalize(t *testing.T) {
	spec := parts(Part{Element: "section"}, Part{ID: "Main Title"}, Part{Class: "Hello World"})

	r := newTestRenderer(t, Options{NormalizeNames: true})
	got, _, err := r.BuildSelector(spec)
	if err != nil {
		t.Fatalf("BuildSelector() error = %v", err)
	}
	if got != "section#main-title.hello-world" {
		t.Errorf("BuildSelector() = %q", got)
	}

	// selector level flag applies to nested selectors too
	r = newTestRenderer(t, Options{})
	nested := &SelectorSpec{Normalize: true, Combine: &CombineSpec{Left: spec, Combinator: " ", Right: parts(Part{Class: "Sub Item"})}}
	got, _, err = r.BuildSelector(nested)
	if err != nil {
		t.Fatalf("BuildSelector() error = %v", err)
	}
	if got != "section#main-title.hello-world   .sub-item" {
		t.Errorf("BuildSelector() = %q", got)
	}
}

func TestRenderer_WarnNonIdent(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r, err := NewRenderer(zap.New(core), Options{WarnNonIdent: true})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	if _, _, err := r.BuildSelector(parts(Part{Element: "*"}, Part{ID: "1st"}, Part{Class: "ok"}, Part{Attr: "data x"})); err != nil {
		t.Fatalf("BuildSelector() error = %v", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(entries))
	}
	if v := entries[0].ContextMap()["value"]; v != "1st" {
		t.Errorf("warning for value %v, want 1st", v)
	}
}

func TestRenderer_Build(t *testing.T) {
	r := newTestRenderer(t, Options{})
	rcp := &Recipe{Version: 1, Rules: []RuleSpec{
		{Name: "a", Selector: parts(Part{Element: "a"}), Properties: map[string]string{"color": "red"}},
		{Selector: parts(Part{Element: "p"}), Media: "print"},
	}}

	sheet, err := r.Build(rcp)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "a {\n  color: red;\n}\n\n@media print {\n  p {\n  }\n}\n"
	if got := sheet.String(); got != want {
		t.Errorf("Build() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderer_BuildCollectsAllErrors(t *testing.T) {
	r := newTestRenderer(t, Options{})
	rcp := &Recipe{Version: 1, Rules: []RuleSpec{
		{Name: "dup", Selector: parts(Part{Element: "div"}, Part{Element: "div"})},
		{Name: "fine", Selector: parts(Part{Element: "p"})},
		{Selector: parts(Part{Class: "x"}, Part{ID: "y"})},
	}}

	_, err := r.Build(rcp)
	if err == nil {
		t.Fatal("expected error")
	}
	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), err)
	}
	if !errors.Is(errs[0], selector.ErrDuplicate) || !strings.Contains(errs[0].Error(), `rule "dup"`) {
		t.Errorf("first error = %v", errs[0])
	}
	if !errors.Is(errs[1], selector.ErrOrder) || !strings.Contains(errs[1].Error(), `rule "#3"`) {
		t.Errorf("second error = %v", errs[1])
	}
}

func TestNewRenderer_BadHeader(t *testing.T) {
	if _, err := NewRenderer(nil, Options{HeaderTemplate: "{{ .Broken"}); err == nil {
		t.Error("expected error for malformed header template")
	}
}
