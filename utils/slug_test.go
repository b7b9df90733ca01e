package utils

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"E-commerce Platform", "e-commerce-platform"},
		{"  My   Project!! ", "my-project"},
		{"API v2.0 (final)", "api-v2-0-final"},
		{"___", ""},
		{"Déjà vu", "d-j-vu"},
		{"Version ٣ beta", "version-beta"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRandomStringLengthAndAlphabet(t *testing.T) {
	s := RandomString(8)
	if len(s) != 8 {
		t.Fatalf("expected 8 chars, got %d", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(randomAlphabet, r) {
			t.Fatalf("unexpected character %q", r)
		}
	}
}

func TestUniqueFileNameShape(t *testing.T) {
	name := UniqueFileName("E-commerce Platform", "logo.PNG")
	if !strings.HasPrefix(name, "e-commerce-platform-") {
		t.Fatalf("unexpected prefix: %s", name)
	}
	if !strings.HasSuffix(name, ".PNG") {
		t.Fatalf("extension not preserved: %s", name)
	}
}

func TestUniqueFileNameEmptyTitle(t *testing.T) {
	name := UniqueFileName("!!!", "logo.png")
	if !strings.HasPrefix(name, "file-") {
		t.Fatalf("expected fallback slug, got %s", name)
	}
}
