package main

import "testing"

func TestNormalizePageName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"juwa slots", "Juwa Slots"},
		{"Juwa Slots", "Juwa Slots"},
		{"  juwa slots  ", "Juwa Slots"},
		{"milk + t", "Milk+T"},
		{"egames", "E-Games"},
		{"e games", "E-Games"},
		{"juwa 2.0", "Juwa 2.0"},
		{"vblink", "VBlink"},
		{"cool page", "Cool Page"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizePageName(c.in); got != c.want {
			t.Fatalf("normalizePageName(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestIsKnownPage(t *testing.T) {
	if !isKnownPage("Juwa Slots") {
		t.Fatal("expected Juwa Slots to be known")
	}
	if isKnownPage("juwa slots") {
		t.Fatal("expected lookup to be case sensitive on canonical names")
	}
	if isKnownPage("Nope Casino") {
		t.Fatal("expected unknown page to be rejected")
	}
}

func TestMonitoredPagesUnique(t *testing.T) {
	seen := make(map[string]bool, len(monitoredPages))
	for _, p := range monitoredPages {
		if seen[p.Name] {
			t.Fatalf("duplicate page name: %s", p.Name)
		}
		seen[p.Name] = true
	}
}
