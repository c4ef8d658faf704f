package recipe

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"selkit/archive"
	"selkit/css"
	"selkit/misc"
)

// HeaderValues are available to header template.
type HeaderValues struct {
	App     string
	Version string
	Sources []string // recipe names (file names without extension)
	Rules   int
}

// Source is a single recipe to build.
type Source struct {
	Path  string // recipe file or archive containing it
	Entry string // path inside archive, empty for plain files

	data []byte
}

func (s Source) String() string {
	if len(s.Entry) == 0 {
		return s.Path
	}
	return s.Path + ":" + s.Entry
}

// Name returns recipe name used in header: file name without extension.
func (s Source) Name() string {
	if len(s.Entry) == 0 {
		return misc.TrimExt(s.Path)
	}
	return misc.TrimExt(s.Entry)
}

// Load reads and parses the recipe.
func (s Source) Load() (*Recipe, error) {
	if s.data == nil {
		return Load(s.Path)
	}
	r, err := Parse(s.data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s, err)
	}
	return r, nil
}

func (r *Renderer) isRecipe(name string) bool {
	return slices.Contains(r.opts.Extensions, strings.ToLower(filepath.Ext(name)))
}

// Collect expands sources into recipe list. Files are taken as is, zip
// archives contribute recipe files they contain in archive order,
// directories contribute their recipe files (not recursively) in natural
// order.
func (r *Renderer) Collect(sources ...string) ([]Source, error) {
	var out []Source
	for _, src := range sources {
		fi, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("unable to access source: %w", err)
		}

		switch {
		case !fi.IsDir() && archive.IsArchive(src):
			err = archive.Walk(src, r.isRecipe, func(path string, f *zip.File) error {
				data, err := archive.ReadFile(f)
				if err != nil {
					return err
				}
				out = append(out, Source{Path: path, Entry: f.Name, data: data})
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("unable to read source archive: %w", err)
			}

		case !fi.IsDir():
			out = append(out, Source{Path: src})

		default:
			entries, err := os.ReadDir(src)
			if err != nil {
				return nil, fmt.Errorf("unable to read source directory: %w", err)
			}
			var names []string
			for _, e := range entries {
				if !e.IsDir() && r.isRecipe(e.Name()) {
					names = append(names, e.Name())
				}
			}
			sort.Sort(natural.StringSlice(names))
			for _, name := range names {
				out = append(out, Source{Path: filepath.Join(src, name)})
			}
			r.log.Debug("Directory expanded", zap.String("dir", src), zap.Strings("files", names))
		}
	}
	return out, nil
}

// Stylesheet loads and builds all recipes from sources into single
// stylesheet. Failures of all recipes are reported together.
func (r *Renderer) Stylesheet(sources ...string) (*css.Stylesheet, error) {
	srcs, err := r.Collect(sources...)
	if err != nil {
		return nil, err
	}
	if len(srcs) == 0 {
		return nil, fmt.Errorf("no recipes found in %s", strings.Join(sources, ", "))
	}

	sheet := &css.Stylesheet{}
	names := make([]string, 0, len(srcs))
	for _, src := range srcs {
		rcp, e := src.Load()
		if e != nil {
			err = multierr.Append(err, e)
			continue
		}
		part, e := r.Build(rcp)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", src, e))
			continue
		}
		r.log.Debug("Recipe built", zap.Stringer("source", src), zap.Int("rules", len(rcp.Rules)))
		sheet.Merge(part)
		names = append(names, src.Name())
	}
	if err != nil {
		return nil, err
	}

	header, err := r.Header(HeaderValues{
		App:     misc.GetAppName(),
		Version: misc.GetVersion(),
		Sources: names,
		Rules:   len(sheet.Rules()),
	})
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		sheet.Items = append([]css.StylesheetItem{{Comment: &header}}, sheet.Items...)
	}
	return sheet, nil
}

// Header expands header template, empty if there is none.
func (r *Renderer) Header(values HeaderValues) (string, error) {
	if r.header == nil {
		return "", nil
	}
	buf := new(bytes.Buffer)
	if err := r.header.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand header template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Render builds stylesheet from sources and writes it to w. Nothing is
// written if any recipe fails.
func (r *Renderer) Render(w io.Writer, sources ...string) (int, error) {
	sheet, err := r.Stylesheet(sources...)
	if err != nil {
		return 0, err
	}
	if _, err := sheet.WriteTo(w); err != nil {
		return 0, fmt.Errorf("unable to write stylesheet: %w", err)
	}
	return len(sheet.Rules()), nil
}
