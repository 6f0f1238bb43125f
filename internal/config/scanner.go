// Scanner implements the config directory/URL discovery capability of
// SPEC_FULL §12, grounded on original_source/src/dialogchain/scanner.py's
// FileScanner/HttpScanner/ConfigScanner. Failures are reported as
// dcerrors.CodeScanner errors, the code spec.md §7 reserves for this
// concern.
package config

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
)

// Scanner discovers candidate route-config locations without loading them.
type Scanner interface {
	Scan(ctx context.Context) ([]string, error)
}

// FileScanner walks a local directory for files matching pattern,
// optionally recursing into subdirectories, mirroring scanner.py's
// FileScanner (rglob vs glob).
type FileScanner struct {
	Path      string
	Pattern   string
	Recursive bool
}

// NewFileScanner applies scanner.py's default pattern ("*.yaml") when
// pattern is empty.
func NewFileScanner(path, pattern string, recursive bool) *FileScanner {
	if pattern == "" {
		pattern = "*.yaml"
	}
	return &FileScanner{Path: path, Pattern: pattern, Recursive: recursive}
}

// Scan returns the paths of every matching file, rooted at Path as given
// (relative paths stay relative). A bare file path
// (not a directory) is returned as-is when it has a yaml/yml extension,
// matching scanner.py's single-file shortcut.
func (s *FileScanner) Scan(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, dcerrors.Cancelled(err)
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, dcerrors.Scanner(fmt.Sprintf("path does not exist: %s", s.Path), err)
	}

	if !info.IsDir() {
		ext := strings.ToLower(filepath.Ext(s.Path))
		if ext == ".yaml" || ext == ".yml" {
			return []string{s.Path}, nil
		}
		return nil, nil
	}

	var matches []string
	if s.Recursive {
		walkErr := filepath.WalkDir(s.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ok, matchErr := filepath.Match(s.Pattern, d.Name())
			if matchErr != nil {
				return matchErr
			}
			if ok {
				matches = append(matches, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, dcerrors.Scanner(fmt.Sprintf("failed to scan %s", s.Path), walkErr)
		}
	} else {
		found, globErr := filepath.Glob(filepath.Join(s.Path, s.Pattern))
		if globErr != nil {
			return nil, dcerrors.Scanner(fmt.Sprintf("failed to scan %s", s.Path), globErr)
		}
		for _, path := range found {
			if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
				matches = append(matches, path)
			}
		}
	}

	sort.Strings(matches)
	return matches, nil
}

// HTTPScanner lists a single remote configuration URL, mirroring
// scanner.py's HttpScanner (which itself does no real directory listing —
// it returns the URL itself once it responds 200).
type HTTPScanner struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

// NewHTTPScanner applies scanner.py's default 30s timeout when timeout is
// zero.
func NewHTTPScanner(url string, timeout time.Duration) *HTTPScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPScanner{URL: url, Timeout: timeout}
}

func (s *HTTPScanner) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: s.Timeout}
}

// Scan issues a HEAD request to confirm the URL is reachable, returning it
// as the sole discovered location on success.
func (s *HTTPScanner) Scan(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.URL, nil)
	if err != nil {
		return nil, dcerrors.Scanner(fmt.Sprintf("invalid scanner URL: %s", s.URL), err)
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return nil, dcerrors.Scanner(fmt.Sprintf("HTTP request failed: %s", s.URL), err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, dcerrors.Scanner(fmt.Sprintf("scanner endpoint returned %d: %s", resp.StatusCode, s.URL), nil)
	}
	return []string{s.URL}, nil
}

// ConfigScanner aggregates the results of multiple scanners in order,
// mirroring scanner.py's ConfigScanner, which fans out across several
// scanner configs and flattens the results.
type ConfigScanner struct {
	scanners []Scanner
}

// NewConfigScanner builds an aggregate over the given scanners.
func NewConfigScanner(scanners ...Scanner) *ConfigScanner {
	return &ConfigScanner{scanners: scanners}
}

// Scan runs every scanner in turn, stopping at the first scanner error and
// returning the union of locations found so far.
func (c *ConfigScanner) Scan(ctx context.Context) ([]string, error) {
	var all []string
	for _, s := range c.scanners {
		found, err := s.Scan(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, found...)
	}
	return all, nil
}
