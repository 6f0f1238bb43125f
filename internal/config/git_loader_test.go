package config

import "testing"

func TestParseGitLocationSplitsURLRefAndPath(t *testing.T) {
	url, ref, path, ok := ParseGitLocation("git+https://github.com/acme/routes.git#main:prod/routes.yaml")
	if !ok {
		t.Fatal("expected a git-backed location to parse")
	}
	if url != "https://github.com/acme/routes.git" {
		t.Fatalf("unexpected url: %s", url)
	}
	if ref != "main" {
		t.Fatalf("unexpected ref: %s", ref)
	}
	if path != "prod/routes.yaml" {
		t.Fatalf("unexpected path: %s", path)
	}
}

func TestParseGitLocationRejectsPlainPath(t *testing.T) {
	_, _, _, ok := ParseGitLocation("/etc/dialogchaind/routes.yaml")
	if ok {
		t.Fatal("expected a non git-backed location to fail to parse")
	}
}

func TestCloneDirNameStripsGitSuffixAndSanitizes(t *testing.T) {
	got := cloneDirName("https://github.com/acme/routes.git")
	if got != "routes" {
		t.Fatalf("expected %q, got %q", "routes", got)
	}
}
