package sentiment

import (
	"context"
	"fmt"
	"testing"

	"ai-companion/internal/llm"
)

type fakeClient struct {
	content string
	err     error
}

func (f *fakeClient) Generate(_ context.Context, _ []llm.Message) (llm.Response, error) {
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Content: f.content}, nil
}

func TestDeltaParsesScore(t *testing.T) {
	a := NewAnalyzer(&fakeClient{content: `{"score": 3, "reason": "優しい"}`})
	if got := a.Delta(context.Background(), "ありがとう"); got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
}

func TestDeltaExtractsEmbeddedJSON(t *testing.T) {
	a := NewAnalyzer(&fakeClient{content: "判定します。\n{\"score\": -3, \"reason\": \"失礼\"}\n以上です。"})
	if got := a.Delta(context.Background(), "ばか"); got != -3 {
		t.Fatalf("want -3, got %d", got)
	}
}

func TestDeltaClampsRange(t *testing.T) {
	a := NewAnalyzer(&fakeClient{content: `{"score": 42, "reason": "x"}`})
	if got := a.Delta(context.Background(), "hi"); got != 5 {
		t.Fatalf("want clamp to 5, got %d", got)
	}
	a = NewAnalyzer(&fakeClient{content: `{"score": -42, "reason": "x"}`})
	if got := a.Delta(context.Background(), "hi"); got != -5 {
		t.Fatalf("want clamp to -5, got %d", got)
	}
}

func TestDeltaFallbacks(t *testing.T) {
	cases := []struct {
		name   string
		client *fakeClient
	}{
		{"call error", &fakeClient{err: fmt.Errorf("boom")}},
		{"no json", &fakeClient{content: "普通だと思います"}},
		{"missing score", &fakeClient{content: `{"reason": "なし"}`}},
		{"garbage json", &fakeClient{content: `{score: yes}`}},
	}
	for _, c := range cases {
		a := NewAnalyzer(c.client)
		if got := a.Delta(context.Background(), "hi"); got != DefaultDelta {
			t.Fatalf("%s: want default %d, got %d", c.name, DefaultDelta, got)
		}
	}
}
