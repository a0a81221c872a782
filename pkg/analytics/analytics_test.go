package analytics

import (
	"strings"
	"testing"
)

func TestWordFrequency(t *testing.T) {
	a := &Analytics{}
	counts := a.WordFrequency("The parser parses HTML. The parser is fast, really fast.")

	if counts["parser"] != 2 {
		t.Errorf("parser count = %d, want 2", counts["parser"])
	}
	if counts["fast"] != 2 {
		t.Errorf("fast count = %d, want 2", counts["fast"])
	}
	if _, ok := counts["the"]; ok {
		t.Error("stopword 'the' should be filtered")
	}
	if _, ok := counts["really"]; ok {
		t.Error("filler word 'really' should be filtered")
	}
}

func TestIsStopword(t *testing.T) {
	if !IsStopword("The") {
		t.Error("IsStopword(The) = false, want true")
	}
	if IsStopword("golang") {
		t.Error("IsStopword(golang) = true, want false")
	}
}

func TestTopKeywords(t *testing.T) {
	counts := map[string]int{"go": 5, "cli": 3, "parser": 1}

	keywords := TopKeywords(counts, 2)
	if len(keywords) != 2 {
		t.Fatalf("TopKeywords() = %d entries, want 2", len(keywords))
	}
	if keywords[0] != "go:5" {
		t.Errorf("keywords[0] = %q, want %q", keywords[0], "go:5")
	}
	if keywords[1] != "cli:3" {
		t.Errorf("keywords[1] = %q, want %q", keywords[1], "cli:3")
	}

	// Limit above the map size returns everything.
	all := TopKeywords(counts, 10)
	if len(all) != 3 {
		t.Errorf("TopKeywords() = %d entries, want 3", len(all))
	}
	for _, kw := range all {
		if !strings.Contains(kw, ":") {
			t.Errorf("keyword %q missing word:count format", kw)
		}
	}
}

func TestMerge(t *testing.T) {
	merged := Merge([]map[string]int{
		{"go": 2, "cli": 1},
		{"go": 3, "parser": 4},
	})

	if merged["go"] != 5 {
		t.Errorf("merged go = %d, want 5", merged["go"])
	}
	if merged["cli"] != 1 {
		t.Errorf("merged cli = %d, want 1", merged["cli"])
	}
	if merged["parser"] != 4 {
		t.Errorf("merged parser = %d, want 4", merged["parser"])
	}
}
