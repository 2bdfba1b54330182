package version

import (
	"regexp"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Listfmt", Listfmt},
		{"Formatter", Formatter},
		{"Linter", Linter},
		{"Registry", Registry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.version == "" {
				t.Errorf("%s version is empty", tt.name)
			}
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name      string
		component string
		expected  string
	}{
		{"formatter", "formatter", Formatter},
		{"format alias", "format", Formatter},
		{"linter", "linter", Linter},
		{"lint alias", "lint", Linter},
		{"registry", "registry", Registry},
		{"unknown component", "unknown", Listfmt},
		{"empty component", "", Listfmt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComponentVersion(tt.component)
			if result != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, result, tt.expected)
			}
		})
	}
}

func TestComponentsKnown(t *testing.T) {
	for _, c := range Components() {
		if ComponentVersion(c) == "" {
			t.Errorf("Component %s has no version", c)
		}
	}
}

func TestString(t *testing.T) {
	s := String()
	if !strings.HasPrefix(s, "listfmt v"+Listfmt) {
		t.Errorf("Expected banner to start with listfmt v%s, got %q", Listfmt, s)
	}
	if !strings.Contains(s, GitCommit) {
		t.Errorf("Expected banner to contain commit %s, got %q", GitCommit, s)
	}
}
