package recipe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"selkit/css"
	"selkit/state"
)

// Run is the action of render command: render SOURCE [DESTINATION].
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger().Named("render")
	if env.Cfg == nil {
		return errors.New("configuration has not been loaded")
	}

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")
	env.NoHeader = cmd.Bool("no-header")

	opts := Options{
		HeaderTemplate: env.Cfg.Output.HeaderTemplate,
		NormalizeNames: env.Cfg.Output.NormalizeNames || cmd.Bool("normalize"),
		WarnNonIdent:   env.Cfg.Output.WarnNonIdent,
		Extensions:     env.Cfg.Output.Extensions,
	}
	if env.NoHeader {
		opts.HeaderTemplate = ""
	}

	r, err := NewRenderer(env.Log, opts)
	if err != nil {
		return err
	}

	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
		if _, e := os.Stat(dst); e == nil && !env.Overwrite {
			return fmt.Errorf("destination '%s' already exists", dst)
		}
		// build before touching destination so failures leave it intact
		sheet, err := r.Stylesheet(src)
		if err != nil {
			return err
		}
		if err := writeStylesheet(dst, sheet); err != nil {
			return err
		}
		log.Info("Stylesheet written", zap.String("source", src), zap.String("destination", dst), zap.Int("rules", len(sheet.Rules())))
		return nil
	}

	n, err := r.Render(os.Stdout, src)
	if err != nil {
		return err
	}
	log.Debug("Stylesheet written", zap.String("source", src), zap.String("destination", "STDOUT"), zap.Int("rules", n))
	return nil
}

func writeStylesheet(dst string, sheet *css.Stylesheet) (err error) {
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
	}
	defer func() {
		if e := out.Close(); e != nil && err == nil {
			err = fmt.Errorf("unable to close destination file '%s': %w", dst, e)
		}
	}()
	if _, err = sheet.WriteTo(out); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	return nil
}
