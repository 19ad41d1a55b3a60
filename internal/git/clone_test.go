package git

import (
	"context"
	"strings"
	"testing"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already clean", "https://example.com/org/repo.git", "https://example.com/org/repo.git"},
		{"surrounding whitespace", "  https://example.com/repo.git\n", "https://example.com/repo.git"},
		{"pasted clone command", "git clone https://example.com/repo.git", "https://example.com/repo.git"},
		{"clone command with flags", "git clone https://example.com/repo.git my-dir", "https://example.com/repo.git"},
		{"trailing words", "https://example.com/repo.git and some junk", "https://example.com/repo.git"},
		{"scp shorthand", "git@example.com:org/repo.git", "git@example.com:org/repo.git"},
		{"empty", "", ""},
		{"bare clone command", "git clone", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeURL(tt.in); got != tt.want {
				t.Errorf("SanitizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidGitURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/org/repo.git", true},
		{"http://example.com/repo", true},
		{"git://example.com/repo.git", true},
		{"ssh://git@example.com/org/repo.git", true},
		{"git@example.com:org/repo.git", true},
		{"/srv/git/repo.git", true},
		{"", false},
		{"https://exa mple.com/repo", false},
	}
	for _, tt := range tests {
		if got := ValidGitURL(tt.url); got != tt.want {
			t.Errorf("ValidGitURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestDefaultCloneDir(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/org/repo.git", "repo"},
		{"https://example.com/org/repo", "repo"},
		{"git@example.com:org/repo.git", "repo"},
		{"/srv/git/repo.git/", "repo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DefaultCloneDir(tt.url); got != tt.want {
			t.Errorf("DefaultCloneDir(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestCloneRejectsInvalidURL(t *testing.T) {
	_, err := Clone(context.Background(), CloneOptions{URL: "", Path: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "not a clonable git url") {
		t.Fatalf("Clone(\"\") = %v, want url validation error", err)
	}
}
