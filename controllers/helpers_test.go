package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func TestPathID(t *testing.T) {
	cases := []struct {
		raw    string
		want   uint
		wantOK bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/clients/x", nil)
		r = mux.SetURLVars(r, map[string]string{"id": tc.raw})
		got, ok := pathID(r)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("pathID(%q) = (%d, %v), want (%d, %v)", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := parseOptionalDate("")
	if err != nil || got != nil {
		t.Fatalf("empty value: got (%v, %v), want (nil, nil)", got, err)
	}

	got, err = parseOptionalDate("2025-03-14")
	if err != nil {
		t.Fatalf("valid date: %v", err)
	}
	want := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.Local)
	if got == nil || !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := parseOptionalDate("14/03/2025"); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("1250.50")
	if err != nil {
		t.Fatalf("parseAmount: %v", err)
	}
	if amount.String() != "1250.5" {
		t.Errorf("got %s, want 1250.5", amount)
	}

	if _, err := parseAmount("not-a-number"); err == nil {
		t.Error("expected error for malformed amount")
	}
	if _, err := parseAmount(""); err == nil {
		t.Error("expected error for empty amount")
	}
}
