package fetcher

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DataExtensions are the file types accepted inside a zipped source.
var DataExtensions = []string{".csv", ".xlsx"}

// Resolver turns an input location (local path or http(s) URL, optionally
// zipped) into a local file path ready to parse.
type Resolver struct {
	Fetcher Fetcher
	TempDir string
}

// NewResolver creates a Resolver that downloads into tempDir.
func NewResolver(f Fetcher, tempDir string) *Resolver {
	return &Resolver{Fetcher: f, TempDir: tempDir}
}

// IsRemote reports whether src is an http or https URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Resolve returns a local path for src. Remote sources are downloaded into
// a fresh directory under TempDir; .zip archives are unpacked and the single
// data file returned. Each call gets its own directory, so sources that
// share a file name never overwrite each other.
func (r *Resolver) Resolve(ctx context.Context, src string) (string, error) {
	if src == "" {
		return "", eris.New("fetcher: empty source")
	}

	local := src
	if IsRemote(src) {
		if r.Fetcher == nil {
			return "", eris.Errorf("fetcher: no http fetcher configured for %s", src)
		}

		name, err := remoteName(src)
		if err != nil {
			return "", err
		}
		dir, err := r.workDir("download-*")
		if err != nil {
			return "", err
		}
		local = filepath.Join(dir, name)

		n, err := r.Fetcher.DownloadToFile(ctx, src, local)
		if err != nil {
			return "", eris.Wrapf(err, "fetcher: download %s", src)
		}
		zap.L().Info("downloaded source",
			zap.String("url", src),
			zap.String("path", local),
			zap.Int64("bytes", n),
		)
	} else if _, err := os.Stat(local); err != nil {
		return "", eris.Wrapf(err, "fetcher: stat %s", local)
	}

	if strings.EqualFold(filepath.Ext(local), ".zip") {
		dir, err := r.workDir("unzip-*")
		if err != nil {
			return "", err
		}
		dest := filepath.Join(dir, strings.TrimSuffix(filepath.Base(local), filepath.Ext(local)))
		extracted, err := ExtractZIPData(local, dest, DataExtensions...)
		if err != nil {
			return "", eris.Wrapf(err, "fetcher: unpack %s", local)
		}
		return extracted, nil
	}

	return local, nil
}

// workDir creates a unique directory under TempDir.
func (r *Resolver) workDir(pattern string) (string, error) {
	if err := os.MkdirAll(r.TempDir, 0o755); err != nil {
		return "", eris.Wrap(err, "fetcher: create temp dir")
	}
	dir, err := os.MkdirTemp(r.TempDir, pattern)
	if err != nil {
		return "", eris.Wrap(err, "fetcher: create work dir")
	}
	return dir, nil
}

func remoteName(src string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: parse url %s", src)
	}
	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		return "", eris.Errorf("fetcher: cannot derive file name from %s", src)
	}
	return name, nil
}
