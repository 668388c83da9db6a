package catalog

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Teflón", "teflon"},
		{"  CINTA   Teflón ", "cinta teflon"},
		{"cañería de PVC", "caneria de pvc"},
		{"sí", "si"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSearchTerms_WhitelistAndSynonyms(t *testing.T) {
	terms := searchTerms("necesito cinta teflón para la unión")

	mustContain := []string{"necesito cinta teflón para la unión", "necesito cinta teflon para la union",
		"teflon", "ptfe", "cinta", "union", "roscada"}
	for _, want := range mustContain {
		if !contains(terms, want) {
			t.Errorf("searchTerms missing %q in %v", want, terms)
		}
	}

	// arbitrary words never become standalone terms
	for _, banned := range []string{"necesito", "para", "la"} {
		if contains(terms, banned) {
			t.Errorf("searchTerms leaked non-whitelisted token %q", banned)
		}
	}
}

func TestSearchTerms_EmptyUtterance(t *testing.T) {
	if got := searchTerms("   "); got != nil {
		t.Errorf("searchTerms(blank) = %v, want nil", got)
	}
}

func TestSearchTerms_NoDuplicates(t *testing.T) {
	terms := searchTerms("cople acople cople")
	seen := map[string]int{}
	for _, term := range terms {
		seen[term]++
	}
	for term, n := range seen {
		if n > 1 {
			t.Errorf("term %q appears %d times", term, n)
		}
	}
}

func TestProductSearchText(t *testing.T) {
	p := Product{
		Name:        "Cinta Teflón 1/2\"",
		Description: "Sella roscas",
		Category:    "Plomería",
		Subcategory: "Consumibles",
	}
	text := p.SearchText()
	for _, want := range []string{"cinta teflon", "sella roscas", "plomeria", "consumibles"} {
		if !strings.Contains(text, want) {
			t.Errorf("SearchText() = %q, missing %q", text, want)
		}
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
