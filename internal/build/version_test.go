package build

import (
	"strings"
	"testing"
)

func TestIsDevBuild(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	if !IsDevBuild() {
		t.Error("dev builds must report true")
	}
	Version = "1.2.3"
	if IsDevBuild() {
		t.Error("release builds must report false")
	}
}

func TestString(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3"
	s := String()
	if !strings.Contains(s, "1.2.3") || !strings.Contains(s, "commit") {
		t.Errorf("got %q", s)
	}
}
