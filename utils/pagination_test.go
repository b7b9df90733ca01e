package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPaginateMiddlePage(t *testing.T) {
	req := httptest.NewRequest("GET", "/clients?search=acme&page=2", nil)
	p := Paginate(req, 25, 2, 9)

	if p.LastPage != 3 {
		t.Fatalf("last page = %d, want 3", p.LastPage)
	}
	if p.PrevPageURL == nil || p.NextPageURL == nil {
		t.Fatal("expected both prev and next links")
	}
	// Links keep the original query string.
	if !strings.Contains(*p.PrevPageURL, "search=acme") || !strings.Contains(*p.PrevPageURL, "page=1") {
		t.Fatalf("prev link lost query: %s", *p.PrevPageURL)
	}
	if !strings.Contains(*p.NextPageURL, "page=3") {
		t.Fatalf("next link wrong page: %s", *p.NextPageURL)
	}
}

func TestPaginateBoundaries(t *testing.T) {
	req := httptest.NewRequest("GET", "/payments", nil)

	first := Paginate(req, 30, 1, 10)
	if first.PrevPageURL != nil {
		t.Fatal("first page must have no prev link")
	}
	if first.NextPageURL == nil {
		t.Fatal("first page of three must have a next link")
	}

	last := Paginate(req, 30, 3, 10)
	if last.NextPageURL != nil {
		t.Fatal("last page must have no next link")
	}
}

func TestPaginateEmptyResult(t *testing.T) {
	req := httptest.NewRequest("GET", "/clients?search=nomatch", nil)
	p := Paginate(req, 0, 1, 9)
	if p.Total != 0 || p.LastPage != 1 {
		t.Fatalf("empty result: total=%d last=%d", p.Total, p.LastPage)
	}
	if p.PrevPageURL != nil || p.NextPageURL != nil {
		t.Fatal("empty result must have no links")
	}
}

func TestPageParamDefaults(t *testing.T) {
	if got := PageParam(httptest.NewRequest("GET", "/works", nil)); got != 1 {
		t.Fatalf("missing page: got %d", got)
	}
	if got := PageParam(httptest.NewRequest("GET", "/works?page=-3", nil)); got != 1 {
		t.Fatalf("negative page: got %d", got)
	}
	if got := PageParam(httptest.NewRequest("GET", "/works?page=4", nil)); got != 4 {
		t.Fatalf("explicit page: got %d", got)
	}
}
