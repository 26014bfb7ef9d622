package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persons.csv")
	require.NoError(t, writeTestFile(path, "serial\n"))

	r := NewResolver(nil, t.TempDir())
	got, err := r.Resolve(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolve_LocalZip(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{
		"usa_00001.csv": "serial,pernum\n",
		"codebook.txt":  "x",
	})

	tmp := t.TempDir()
	got, err := NewResolver(nil, tmp).Resolve(context.Background(), zipPath)
	require.NoError(t, err)
	assert.Equal(t, "usa_00001.csv", filepath.Base(got))
	assert.Equal(t, "test", filepath.Base(filepath.Dir(got)))
	rel, err := filepath.Rel(tmp, got)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."), "extracted under the temp dir")
}

func TestResolve_LocalZipsWithSameName(t *testing.T) {
	first := createTestZIP(t, map[string]string{"data.csv": "persons\n"})
	second := createTestZIP(t, map[string]string{"data.csv": "crosswalk\n"})
	require.Equal(t, filepath.Base(first), filepath.Base(second))

	r := NewResolver(nil, t.TempDir())
	a, err := r.Resolve(context.Background(), first)
	require.NoError(t, err)
	b, err := r.Resolve(context.Background(), second)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	data, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "persons\n", string(data))
}

func TestResolve_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocorr/puma_county.csv", r.URL.Path)
		w.Write([]byte("state,puma,county,afact\n")) //nolint:errcheck
	}))
	defer srv.Close()

	tmp := filepath.Join(t.TempDir(), "dl")
	got, err := NewResolver(newTestFetcher(), tmp).Resolve(context.Background(), srv.URL+"/geocorr/puma_county.csv?v=2")
	require.NoError(t, err)
	assert.Equal(t, "puma_county.csv", filepath.Base(got))
	assert.Equal(t, tmp, filepath.Dir(filepath.Dir(got)))

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "state,puma,county,afact\n", string(data))
}

func TestResolve_RemoteSameBaseName(t *testing.T) {
	serve := func(body string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(body)) //nolint:errcheck
		}))
	}
	acs := serve("persons\n")
	defer acs.Close()
	geocorr := serve("crosswalk\n")
	defer geocorr.Close()

	r := NewResolver(newTestFetcher(), t.TempDir())
	ctx := context.Background()

	var (
		wg     sync.WaitGroup
		paths  [2]string
		errs   [2]error
		bodies = [2]string{"persons\n", "crosswalk\n"}
	)
	for i, u := range []string{acs.URL + "/acs/data.csv", geocorr.URL + "/geocorr/data.csv"} {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			paths[i], errs[i] = r.Resolve(ctx, u)
		}(i, u)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.NotEqual(t, paths[0], paths[1])
	for i, p := range paths {
		assert.Equal(t, "data.csv", filepath.Base(p))
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, bodies[i], string(data))
	}
}

func TestResolve_Errors(t *testing.T) {
	r := NewResolver(nil, t.TempDir())

	_, err := r.Resolve(context.Background(), "")
	require.Error(t, err)

	_, err = r.Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetcher: stat")

	_, err = r.Resolve(context.Background(), "https://example.com/x.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no http fetcher")

	_, err = NewResolver(newTestFetcher(), t.TempDir()).Resolve(context.Background(), "https://example.com/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot derive file name")
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://www.huduser.gov/il.xlsx"))
	assert.True(t, IsRemote("http://localhost/x"))
	assert.False(t, IsRemote("/data/persons.csv"))
	assert.False(t, IsRemote("persons.csv"))
}
