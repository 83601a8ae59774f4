// Package archive expands zip and rar containers so their members can
// be ingested as individual documents. Expansion is flat: nested
// directories inside the archive are walked but members land directly
// in the destination, and nested archives are not recursed into.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nwaples/rardecode"

	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
	"github.com/marais-labs/corpus-cli/internal/logger"
)

// Ensure Expander implements the interface.
var _ driven.ArchiveExpander = (*Expander)(nil)

// Expander unpacks zip and rar archives.
type Expander struct{}

// New returns an archive expander.
func New() *Expander { return &Expander{} }

func (e *Expander) SupportedExtensions() []string {
	return []string{"zip", "rar"}
}

// Expand unpacks the archive's regular files into destDir and returns
// the written paths. Name collisions overwrite; a member that fails to
// extract is skipped and logged rather than failing the archive.
func (e *Expander) Expand(ctx context.Context, path, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", destDir, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return e.expandZip(ctx, path, destDir)
	case ".rar":
		return e.expandRar(ctx, path, destDir)
	default:
		return nil, fmt.Errorf("not an archive: %s", path)
	}
}

func (e *Expander) expandZip(ctx context.Context, path, destDir string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()

	var written []string
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if f.FileInfo().IsDir() || isHiddenMember(f.Name) {
			continue
		}
		rc, openErr := f.Open()
		if openErr != nil {
			logger.Warn("skipping archive member %s: %v", f.Name, openErr)
			continue
		}
		dest := filepath.Join(destDir, filepath.Base(f.Name))
		if writeErr := writeMember(dest, rc); writeErr != nil {
			logger.Warn("skipping archive member %s: %v", f.Name, writeErr)
		} else {
			written = append(written, dest)
		}
		rc.Close()
	}
	return written, nil
}

func (e *Expander) expandRar(ctx context.Context, path, destDir string) ([]string, error) {
	rr, err := rardecode.OpenReader(path, "")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer rr.Close()

	var written []string
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		hdr, nextErr := rr.Next()
		if nextErr == io.EOF {
			break
		}
		if nextErr != nil {
			return written, fmt.Errorf("reading %s: %w", path, nextErr)
		}
		if hdr.IsDir || isHiddenMember(hdr.Name) {
			continue
		}
		dest := filepath.Join(destDir, filepath.Base(hdr.Name))
		if writeErr := writeMember(dest, rr); writeErr != nil {
			logger.Warn("skipping archive member %s: %v", hdr.Name, writeErr)
			continue
		}
		written = append(written, dest)
	}
	return written, nil
}

// isHiddenMember filters dotfiles and macOS resource fork entries that
// archives routinely carry.
func isHiddenMember(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, ".") || strings.HasPrefix(name, "__MACOSX/")
}

func writeMember(dest string, r io.Reader) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}
