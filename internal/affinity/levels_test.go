package affinity

import "testing"

func testLevels() []Level {
	return []Level{
		{Threshold: 0, Description: "stranger", PromptAddition: "polite"},
		{Threshold: 30, Description: "acquaintance", PromptAddition: "casual"},
		{Threshold: 60, Description: "friend", PromptAddition: "friendly"},
		{Threshold: 90, Description: "lover", PromptAddition: "affectionate"},
	}
}

func TestResolveLevelBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "stranger"},
		{29, "stranger"},
		{30, "acquaintance"},
		{59, "acquaintance"},
		{60, "friend"},
		{95, "lover"},
	}
	for _, c := range cases {
		got, _ := ResolveLevel(c.score, testLevels())
		if got != c.want {
			t.Fatalf("resolve(%d): want %q, got %q", c.score, c.want, got)
		}
	}
}

func TestResolveLevelFallback(t *testing.T) {
	levels := []Level{
		{Threshold: 10, Description: "base", PromptAddition: "b"},
		{Threshold: 50, Description: "high", PromptAddition: "h"},
	}
	// below every threshold: first configured entry wins
	desc, add := ResolveLevel(5, levels)
	if desc != "base" || add != "b" {
		t.Fatalf("want base fallback, got %q/%q", desc, add)
	}
}

func TestResolveLevelEmptyTable(t *testing.T) {
	desc, add := ResolveLevel(50, nil)
	if desc != "" || add != "" {
		t.Fatalf("want empty result, got %q/%q", desc, add)
	}
}

func TestResolveLevelInputUnmodified(t *testing.T) {
	levels := testLevels()
	ResolveLevel(95, levels)
	if levels[0].Description != "stranger" || levels[3].Description != "lover" {
		t.Fatalf("input table reordered: %+v", levels)
	}
}
