package recipe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"selkit/selector"
	"selkit/state"
	"selkit/utils/debug"
)

// Explain prints tree of every rule from sources: selector parts as
// written in recipe, rendered text and specificity. Broken recipes and rules
// are reported in place and do not stop the dump.
func (r *Renderer) Explain(sources ...string) (string, error) {
	srcs, err := r.Collect(sources...)
	if err != nil {
		return "", err
	}
	if len(srcs) == 0 {
		return "", fmt.Errorf("no recipes found in %s", strings.Join(sources, ", "))
	}

	tw := debug.NewTreeWriter()
	for _, src := range srcs {
		tw.Line(0, "%s", src)
		rcp, err := src.Load()
		if err != nil {
			tw.Value(1, "error", err.Error())
			continue
		}
		for i, rule := range rcp.Rules {
			name := rule.Name
			if len(name) == 0 {
				name = fmt.Sprintf("#%d", i+1)
			}
			tw.Line(1, "rule %q", name)
			if len(rule.Media) > 0 {
				tw.Value(2, "media", rule.Media)
			}
			text, sp, err := r.BuildSelector(rule.Selector)
			if err != nil {
				tw.Value(2, "error", err.Error())
			} else {
				tw.Value(2, "selector", text)
				tw.Line(2, "specificity: %s", sp)
			}
			explainSelector(tw, 2, rule.Selector)
		}
	}
	return tw.String(), nil
}

func explainSelector(tw *debug.TreeWriter, depth int, spec *SelectorSpec) {
	if spec == nil {
		tw.Line(depth, "empty")
		return
	}
	if spec.Normalize {
		tw.Line(depth, "normalize")
	}
	if spec.Combine != nil {
		c, err := selector.ParseCombinator(spec.Combine.Combinator)
		if err != nil {
			tw.Value(depth, "combinator", spec.Combine.Combinator)
		} else {
			tw.Line(depth, "combinator: %s", combinatorName(c))
		}
		tw.Line(depth, "left")
		explainSelector(tw, depth+1, spec.Combine.Left)
		tw.Line(depth, "right")
		explainSelector(tw, depth+1, spec.Combine.Right)
	}
	if len(spec.Parts) > 0 {
		tw.Line(depth, "parts")
		for _, part := range spec.Parts {
			kind, value, err := part.Kind()
			if err != nil {
				tw.Value(depth+1, "invalid", err.Error())
				continue
			}
			tw.Value(depth+1, kind.String(), value)
		}
	}
}

func combinatorName(c selector.Combinator) string {
	switch c {
	case selector.Child:
		return "child"
	case selector.Adjacent:
		return "adjacent"
	case selector.Sibling:
		return "sibling"
	default:
		return "descendant"
	}
}

// RunExplain is the action of explain command: explain SOURCE.
func RunExplain(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	if env.Cfg == nil {
		return errors.New("configuration has not been loaded")
	}

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}

	r, err := NewRenderer(env.Log, Options{
		NormalizeNames: env.Cfg.Output.NormalizeNames || cmd.Bool("normalize"),
		WarnNonIdent:   env.Cfg.Output.WarnNonIdent,
		Extensions:     env.Cfg.Output.Extensions,
	})
	if err != nil {
		return err
	}

	out, err := r.Explain(cmd.Args().Slice()...)
	if err != nil {
		return err
	}
	env.Logger().Named("explain").Debug("Recipes explained", zap.Strings("sources", cmd.Args().Slice()))

	_, err = fmt.Fprint(os.Stdout, out)
	return err
}
