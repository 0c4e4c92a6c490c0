package store

import (
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-explorer/internal/raw"
	"github.com/preston-bernstein/nba-explorer/internal/testutil"
)

func TestMemoryStoreGetSet(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	if _, ok := s.Get("teams"); ok {
		t.Fatalf("expected miss on empty store")
	}

	records := []raw.Record{{"id": "A"}, {"id": "B"}}
	s.Set("teams", records)

	got, ok := s.Get("teams")
	if !ok || len(got) != 2 || got[0]["id"] != "A" {
		t.Fatalf("expected stored batch, got %v (%v)", got, ok)
	}

	got[0] = raw.Record{"id": "Z"}
	again, _ := s.Get("teams")
	if again[0]["id"] != "A" {
		t.Fatalf("expected stored slice to be isolated from callers")
	}
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	clock := testutil.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewMemoryStore(time.Minute)
	s.now = clock.Now

	s.Set("teams", []raw.Record{{"id": "A"}})
	clock.Advance(59 * time.Second)
	if _, ok := s.Get("teams"); !ok {
		t.Fatalf("expected entry before ttl")
	}

	clock.Advance(time.Second)
	if _, ok := s.Get("teams"); ok {
		t.Fatalf("expected entry to expire at ttl")
	}

	s.Set("players:", nil)
	if s.Len() != 1 {
		t.Fatalf("expected expired entry dropped on write, got %d", s.Len())
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Set("games", []raw.Record{{"game_id": j}})
				s.Get("games")
			}
		}()
	}
	wg.Wait()
	if s.Len() != 1 {
		t.Fatalf("expected one key, got %d", s.Len())
	}
}
