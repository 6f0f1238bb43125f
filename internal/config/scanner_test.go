package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestFileScannerNonRecursiveFindsTopLevelOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "routes: []")
	writeFile(t, dir, "nested/b.yaml", "routes: []")

	s := NewFileScanner(dir, "*.yaml", false)
	found, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestFileScannerRecursiveFindsNestedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "routes: []")
	writeFile(t, dir, "nested/b.yaml", "routes: []")
	writeFile(t, dir, "nested/c.txt", "ignored")

	s := NewFileScanner(dir, "*.yaml", true)
	found, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestFileScannerMissingPathIsScannerError(t *testing.T) {
	s := NewFileScanner(filepath.Join(t.TempDir(), "does-not-exist"), "*.yaml", true)
	_, err := s.Scan(context.Background())
	assert.Error(t, err)
}

func TestFileScannerSingleFileShortcut(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "only.yaml", "routes: []")

	s := NewFileScanner(path, "*.yaml", true)
	found, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{path}, found)
}

func TestHTTPScannerReturnsURLOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewHTTPScanner(srv.URL, 0)
	found, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL}, found)
}

func TestHTTPScannerNon200IsScannerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewHTTPScanner(srv.URL, 0)
	_, err := s.Scan(context.Background())
	assert.Error(t, err)
}

func TestConfigScannerAggregatesMultipleScanners(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.yaml", "routes: []")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	agg := NewConfigScanner(NewFileScanner(dir, "*.yaml", false), NewHTTPScanner(srv.URL, 0))
	found, err := agg.Scan(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{path, srv.URL}, found)
}
