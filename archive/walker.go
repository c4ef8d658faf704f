// Package archive walks files stored in zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// WalkFunc is called for each file in archive accepted by Walk. The archive
// argument is the path passed to Walk. If an error is returned, processing
// stops.
type WalkFunc func(archive string, file *zip.File) error

// IsArchive returns true if path names zip archive.
func IsArchive(name string) bool {
	return strings.EqualFold(path.Ext(strings.ReplaceAll(name, `\`, "/")), ".zip")
}

// Walk calls walkFn for every regular file in archive for which match
// returns true, in archive order. nil match accepts everything. Archives
// with absolute entry paths or ".." components are rejected.
func Walk(archive string, match func(name string) bool, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || (match != nil && !match(name)) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns uncompressed content of archived file.
func ReadFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open zip entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("unable to read zip entry %q: %w", f.Name, err)
	}
	return data, nil
}

// isSafePath returns false for absolute paths and paths containing ".."
// components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
