package cache

import (
	"testing"
	"time"
)

func TestMemoryExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	m.Set("groups", []byte("[]"), time.Minute)
	if v, ok := m.Get("groups"); !ok || string(v) != "[]" {
		t.Fatalf("Get = %q, %v; want [], true", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := m.Get("groups"); ok {
		t.Fatal("expired entry was returned")
	}
}

func TestNopStore(t *testing.T) {
	var s Store = NopStore{}
	s.Set("k", []byte("v"), time.Minute)
	if _, ok := s.Get("k"); ok {
		t.Fatal("NopStore returned a value")
	}
}
