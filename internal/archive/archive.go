// Package archive stores rendered plan reports in a bucket or directory.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReportArchive stores a rendered report and returns where it went
type ReportArchive interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ReportKey builds an object key such as
// reports/child_education/20250301T120000Z-college.pdf
func ReportKey(goalType, name, ext string, at time.Time) string {
	slug := slugify(name)
	if slug == "" {
		slug = "plan"
	}
	return fmt.Sprintf("reports/%s/%s-%s.%s", goalType, at.UTC().Format("20060102T150405Z"), slug, strings.TrimPrefix(ext, "."))
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// DirArchive writes reports below a local directory
type DirArchive struct {
	Root string
}

// NewDirArchive creates an archive rooted at dir
func NewDirArchive(dir string) *DirArchive {
	return &DirArchive{Root: dir}
}

// Put writes data to Root/key and returns the file path
func (d *DirArchive) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid report key %q", key)
	}
	path := filepath.Join(d.Root, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
