package auth

import (
	"testing"
	"time"
)

func TestStateStoreConsumeIsOneShot(t *testing.T) {
	s := newStateStore()
	s.put("abc", time.Now().Add(time.Minute))

	if !s.consume("abc") {
		t.Fatal("expected first consume to succeed")
	}
	if s.consume("abc") {
		t.Fatal("expected second consume to fail")
	}
}

func TestStateStoreSweepsExpiredOnPut(t *testing.T) {
	s := newStateStore()
	for _, state := range []string{"old-1", "old-2"} {
		s.put(state, time.Now().Add(-time.Minute))
	}

	s.put("fresh", time.Now().Add(time.Minute))

	s.mu.Lock()
	n := len(s.items)
	s.mu.Unlock()
	if n != 1 {
		t.Fatalf("expected expired entries swept, got %d entries", n)
	}
	if s.consume("old-1") {
		t.Fatal("expected expired state to be rejected")
	}
	if !s.consume("fresh") {
		t.Fatal("expected fresh state to be accepted")
	}
}
