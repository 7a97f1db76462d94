package buildinfo

import (
	"strings"
	"testing"
)

func TestScope(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	tests := []struct {
		version, commit string
		want            string
	}{
		{"dev", "none", "dev"},
		{"dev", "0123456789abcdef", "dev-0123456789ab"},
		{"dev", "abc", "dev-abc"},
		{"v1.2.0", "0123456789abcdef", "v1.2.0"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Scope(); got != tt.want {
			t.Errorf("Scope() with %s/%s = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
