package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/fuzzy/pkg/fuzzy/internalerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/store"
)

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	s := New()

	in := []float64{1.5, 2}
	rec, err := s.RecordRun(ctx, store.Run{
		Kind:   store.KindInference,
		Source: "tipping",
		Method: "centroid",
		Inputs: in,
		Output: 12.5,
	})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected an ID to be assigned")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	// Mutating the caller's slice must not change the stored run.
	in[0] = 99

	got, err := s.GetRun(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Inputs[0] != 1.5 || got.Output != 12.5 || got.Source != "tipping" {
		t.Errorf("unexpected run: %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := New()
	_, err := s.GetRun(context.Background(), "nope")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.RecordRun(ctx, store.Run{ID: "a", Kind: store.KindInference}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if _, err := s.RecordRun(ctx, store.Run{ID: "a", Kind: store.KindInference}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate, got %v", err)
	}
}

func TestListNewestFirstWithFilter(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	kinds := []store.Kind{store.KindInference, store.KindControlSurface, store.KindInference, store.KindInferenceSurface}
	var ids []string
	for i, k := range kinds {
		r, err := s.RecordRun(ctx, store.Run{Kind: k, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		if err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
		ids = append(ids, r.ID)
	}

	all, err := s.ListRuns(ctx, store.ListOptions{})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(all))
	}
	for i := range all {
		if all[i].ID != ids[len(ids)-1-i] {
			t.Errorf("position %d: got %s, want %s", i, all[i].ID, ids[len(ids)-1-i])
		}
	}

	inf, err := s.ListRuns(ctx, store.ListOptions{Kind: store.KindInference, Limit: 1})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(inf) != 1 || inf[0].ID != ids[2] {
		t.Errorf("expected newest inference run %s, got %+v", ids[2], inf)
	}
}

func TestConcurrentRecord(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.RecordRun(ctx, store.Run{Kind: store.KindInference}); err != nil {
				t.Errorf("RecordRun: %v", err)
			}
		}()
	}
	wg.Wait()

	runs, err := s.ListRuns(ctx, store.ListOptions{Limit: 100})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 32 {
		t.Fatalf("expected 32 runs with unique IDs, got %d", len(runs))
	}
}
