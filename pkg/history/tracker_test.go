package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ollo-ai/ollo/pkg/models"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history_test.db")
	tr, err := New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func record(model string, cached bool, outcome string, latency int64, eval int) models.QueryRecord {
	return models.QueryRecord{
		PromptHash: "abc123",
		Model:      model,
		Cached:     cached,
		Outcome:    outcome,
		LatencyMs:  latency,
		EvalCount:  eval,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestRecordAndRecent(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	if err := tr.Record(ctx, record("llama2:7b", false, "ok", 900, 42)); err != nil {
		t.Fatal(err)
	}
	if err := tr.Record(ctx, record("llama2:7b", true, "ok", 1, 0)); err != nil {
		t.Fatal(err)
	}

	records, err := tr.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Newest first.
	if !records[0].Cached {
		t.Error("expected the cached record first")
	}
}

func TestRecentLimit(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := tr.Record(ctx, record("m", false, "ok", 10, 1)); err != nil {
			t.Fatal(err)
		}
	}

	records, err := tr.Recent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
}

func TestSummary(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_ = tr.Record(ctx, record("llama2:7b", false, "ok", 1000, 50))
	_ = tr.Record(ctx, record("llama2:7b", true, "ok", 2, 0))
	_ = tr.Record(ctx, record("mistral:7b", false, "timeout", 10000, 0))

	summaries, err := tr.Summary(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 models, got %d", len(summaries))
	}

	llama := summaries[0]
	if llama.Model != "llama2:7b" || llama.QueryCount != 2 || llama.CacheHits != 1 {
		t.Errorf("unexpected llama summary: %+v", llama)
	}
	if llama.MeanLatencyMs != 501 {
		t.Errorf("expected mean latency 501, got %d", llama.MeanLatencyMs)
	}
	if llama.TotalEval != 50 {
		t.Errorf("expected 50 total eval tokens, got %d", llama.TotalEval)
	}
}

func TestSummaryModelFilter(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_ = tr.Record(ctx, record("llama2:7b", false, "ok", 100, 10))
	_ = tr.Record(ctx, record("mistral:7b", false, "ok", 100, 10))

	summaries, err := tr.Summary(ctx, "mistral:7b")
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || summaries[0].Model != "mistral:7b" {
		t.Errorf("unexpected filtered summary: %+v", summaries)
	}
}
