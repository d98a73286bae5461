package telegram

import (
	"strings"
	"testing"
)

func TestSplitMessage(t *testing.T) {
	if got := splitMessage("short", 10); len(got) != 1 || got[0] != "short" {
		t.Fatalf("short text must stay whole, got %v", got)
	}

	long := strings.Repeat("あ", 25)
	got := splitMessage(long, 10)
	if len(got) != 3 {
		t.Fatalf("want 3 chunks, got %d", len(got))
	}
	if len([]rune(got[0])) != 10 || len([]rune(got[2])) != 5 {
		t.Fatalf("chunk sizes wrong: %v", got)
	}
	if strings.Join(got, "") != long {
		t.Fatalf("chunks do not reassemble input")
	}
}

func TestGreetingBuckets(t *testing.T) {
	if g := startupGreeting(7); !strings.Contains(g, "おはよう") {
		t.Fatalf("morning greeting mismatch: %q", g)
	}
	if g := startupGreeting(2); !strings.Contains(g, "深夜") {
		t.Fatalf("late-night greeting mismatch: %q", g)
	}
	if g := shutdownGreeting(22); !strings.Contains(g, "おやすみ") {
		t.Fatalf("night farewell mismatch: %q", g)
	}
	// every hour maps to something
	for h := 0; h < 24; h++ {
		if startupGreeting(h) == "" || shutdownGreeting(h) == "" {
			t.Fatalf("empty greeting for hour %d", h)
		}
	}
}
