package recipe

import (
	"errors"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"selkit/css"
	"selkit/selector"
)

// Options control how recipes are turned into stylesheets.
type Options struct {
	HeaderTemplate string   // text/template for leading comment, empty for none
	NormalizeNames bool     // slugify id and class values of every selector
	WarnNonIdent   bool     // log element, id and class values which are not CSS identifiers
	Extensions     []string // recipe file extensions when expanding directories
}

// Renderer builds stylesheets from recipes.
type Renderer struct {
	log    *zap.Logger
	opts   Options
	header *template.Template
}

// NewRenderer creates renderer, header template is parsed here.
func NewRenderer(log *zap.Logger, opts Options) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{log: log.Named("recipe"), opts: opts}
	if len(opts.Extensions) == 0 {
		r.opts.Extensions = []string{".yaml", ".yml"}
	}
	if len(opts.HeaderTemplate) > 0 {
		tmpl, err := template.New("header").Funcs(sprig.FuncMap()).Parse(opts.HeaderTemplate)
		if err != nil {
			return nil, fmt.Errorf("unable to parse header template: %w", err)
		}
		r.header = tmpl
	}
	return r, nil
}

// Build turns every rule of the recipe into stylesheet rule. All rules are
// attempted, errors are combined and returned together.
func (r *Renderer) Build(rcp *Recipe) (*css.Stylesheet, error) {
	sheet := &css.Stylesheet{}

	var err error
	for i, rule := range rcp.Rules {
		name := rule.Name
		if len(name) == 0 {
			name = fmt.Sprintf("#%d", i+1)
		}

		text, sp, e := r.BuildSelector(rule.Selector)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("rule %q: %w", name, e))
			continue
		}

		r.log.Debug("Rule built", zap.String("name", name), zap.String("selector", text), zap.Stringer("specificity", sp))
		sheet.AddRule(css.Rule{Selector: text, Properties: rule.Properties}, rule.Media)
	}
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

// BuildSelector renders selector described by spec.
func (r *Renderer) BuildSelector(spec *SelectorSpec) (string, selector.Specificity, error) {
	b, err := r.builder(spec, r.opts.NormalizeNames)
	if err != nil {
		return "", selector.Specificity{}, err
	}
	text, err := b.Stringify()
	if err != nil {
		return "", selector.Specificity{}, err
	}
	return text, b.Specificity(), nil
}

func (r *Renderer) builder(spec *SelectorSpec, normalize bool) (*selector.Builder, error) {
	if spec == nil {
		return nil, errors.New("selector is empty")
	}
	normalize = normalize || spec.Normalize

	switch {
	case spec.Combine != nil && len(spec.Parts) > 0:
		return nil, errors.New("selector cannot have both parts and combine")
	case spec.Combine != nil:
		return r.combination(spec.Combine, normalize)
	case len(spec.Parts) == 0:
		return nil, errors.New("selector has no parts")
	}

	b := selector.New()
	for i, part := range spec.Parts {
		kind, value, err := part.Kind()
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i+1, err)
		}
		if normalize && (kind == selector.KindID || kind == selector.KindClass) {
			value = slug.Make(value)
		}
		r.checkIdent(kind, value)

		if b.Add(kind, value); b.Err() != nil {
			return nil, fmt.Errorf("part %d (%s %q): %w", i+1, kind, value, b.Err())
		}
	}
	return b, nil
}

func (r *Renderer) combination(spec *CombineSpec, normalize bool) (*selector.Builder, error) {
	c, err := selector.ParseCombinator(spec.Combinator)
	if err != nil {
		return nil, err
	}
	left, err := r.builder(spec.Left, normalize)
	if err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	right, err := r.builder(spec.Right, normalize)
	if err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}
	return selector.Combine(left, c, right), nil
}

// checkIdent warns about names which would not form a valid selector.
func (r *Renderer) checkIdent(kind selector.Kind, value string) {
	if !r.opts.WarnNonIdent {
		return
	}
	switch kind {
	case selector.KindElement:
		if value == "*" {
			return
		}
	case selector.KindID, selector.KindClass:
	default:
		return
	}
	if !css.IsIdent(value) {
		r.log.Warn("Value is not a valid CSS identifier", zap.Stringer("kind", kind), zap.String("value", value))
	}
}
