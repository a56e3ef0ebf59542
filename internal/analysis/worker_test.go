package analysis

import (
	"context"
	"testing"
	"time"
)

func TestRunBatch(t *testing.T) {
	files := []File{
		{Name: "a.ifc", Content: wallFile},
		{Name: "b.ifc", Content: wallFile},
	}
	batch := RunBatch(context.Background(), files, Options{Now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)})
	if len(batch.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", batch.Errors)
	}
	if len(batch.Analyses) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(batch.Analyses))
	}
	if batch.Analyses[0].File != "a.ifc" || batch.Analyses[1].File != "b.ifc" {
		t.Fatalf("expected input order preserved, got %s then %s", batch.Analyses[0].File, batch.Analyses[1].File)
	}
}

func TestRunBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := []File{{Name: "a.ifc", Content: wallFile}, {Name: "b.ifc", Content: wallFile}}
	batch := RunBatch(ctx, files, Options{})
	if len(batch.Analyses) != 0 {
		t.Fatalf("expected no analyses after cancellation, got %d", len(batch.Analyses))
	}
	if len(batch.Errors) != 2 {
		t.Fatalf("expected every unstarted file reported, got %v", batch.Errors)
	}
}

func TestRunBatch_Empty(t *testing.T) {
	batch := RunBatch(context.Background(), nil, Options{})
	if len(batch.Analyses) != 0 || len(batch.Errors) != 0 {
		t.Fatalf("expected empty batch result, got %+v", batch)
	}
}

func TestWorker_Reusable(t *testing.T) {
	w := NewWorker()
	defer w.Close()

	w.requests <- request{id: 0, file: File{Name: "a.ifc", Content: wallFile}, options: Options{}}
	first := <-w.responses
	w.requests <- request{id: 1, file: File{Name: "b.ifc", Content: wallFile}, options: Options{}}
	second := <-w.responses

	if first.id != 0 || second.id != 1 {
		t.Fatalf("expected matched ids, got %d then %d", first.id, second.id)
	}
	if first.result.File != "a.ifc" || second.result.File != "b.ifc" {
		t.Fatalf("unexpected results: %s, %s", first.result.File, second.result.File)
	}
}
