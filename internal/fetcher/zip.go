package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ExtractZIPData extracts the one data file from an archive. Directories,
// macOS resource forks and files whose extension is not in exts are ignored;
// an empty exts accepts any extension. Exactly one candidate must remain.
func ExtractZIPData(zipPath, destDir string, exts ...string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	var candidates []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		if len(exts) > 0 && !hasExt(f.Name, exts) {
			continue
		}
		candidates = append(candidates, f)
	}

	switch len(candidates) {
	case 0:
		return "", eris.Errorf("zip: no data file matching %v in %s", exts, filepath.Base(zipPath))
	case 1:
		return extractZIPEntry(candidates[0], destDir)
	default:
		names := make([]string, len(candidates))
		for i, f := range candidates {
			names[i] = f.Name
		}
		return "", eris.Errorf("zip: expected one data file in %s, found %d: %s",
			filepath.Base(zipPath), len(candidates), strings.Join(names, ", "))
	}
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// extractZIPEntry writes one archive member under destDir and returns its path.
func extractZIPEntry(f *zip.File, destDir string) (string, error) {
	destPath := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("zip: illegal path %q (zip slip attempt)", f.Name)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", eris.Wrap(err, "zip: create parent directory")
	}

	rc, err := f.Open()
	if err != nil {
		return "", eris.Wrap(err, "zip: open entry")
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: create file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return "", eris.Wrap(err, "zip: write file")
	}

	return destPath, nil
}
