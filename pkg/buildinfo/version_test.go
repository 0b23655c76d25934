package buildinfo

import (
	"strings"
	"testing"
)

func TestStringIncludesVersion(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if s := String(); !strings.Contains(s, "version: v9.9.9") || !strings.Contains(s, "go: go") {
		t.Errorf("String() = %q", s)
	}
	if tpl := Template(); !strings.HasPrefix(tpl, "{{.Name}} v9.9.9 (") {
		t.Errorf("Template() = %q", tpl)
	}
}

func TestRevisionPrefersLdflags(t *testing.T) {
	old := Commit
	Commit = "abc1234"
	defer func() { Commit = old }()

	if got := Revision(); got != "abc1234" {
		t.Errorf("Revision() = %q, want abc1234", got)
	}
}
