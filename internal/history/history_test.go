package history

import "testing"

func TestAppendAndGet(t *testing.T) {
	m := NewManager(10)
	m.AppendUser(1, "hi")
	m.AppendAssistant(1, "hello")
	m.AppendUser(2, "other user")

	msgs := m.Get(1)
	if len(msgs) != 2 {
		t.Fatalf("want 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "hi" {
		t.Fatalf("first message mismatch: %+v", msgs[0])
	}
	if msgs[1].Role != "assistant" {
		t.Fatalf("second message mismatch: %+v", msgs[1])
	}
	if len(m.Get(2)) != 1 {
		t.Fatalf("sessions not isolated")
	}
}

func TestWindowTrimsOldest(t *testing.T) {
	m := NewManager(4)
	for i := 0; i < 6; i++ {
		m.AppendUser(1, "u")
		m.AppendAssistant(1, "a")
	}
	msgs := m.Get(1)
	if len(msgs) != 4 {
		t.Fatalf("want window of 4, got %d", len(msgs))
	}
}

func TestReset(t *testing.T) {
	m := NewManager(10)
	m.AppendUser(1, "hi")
	m.Reset(1)
	if len(m.Get(1)) != 0 {
		t.Fatalf("reset not effective")
	}
}
