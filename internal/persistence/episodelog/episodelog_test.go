package episodelog

import (
	"path/filepath"
	"testing"

	"gridverse.ai/internal/repr"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.jsonl.zst")
	header := Header{Env: "Empty-5x5", Seed: 1337, ObsRep: "default", RecordedAt: "2026-08-24T00:00:00Z"}

	w, err := NewWriter(path, header)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	records := []StepRecord{
		{Episode: 0, Step: 0, Action: 4, Reward: 0, Done: false,
			Observation: map[string]repr.Array{
				"agent": {Shape: []int{3}, Data: []int{6, 3, 0}},
			}},
		{Episode: 0, Step: 1, Action: 0, Reward: 1, Done: true},
		{Episode: 1, Step: 0, Action: 2, Reward: -0.01, Done: false},
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	defer r.Close()

	if r.Header() != header {
		t.Fatalf("header %+v, want %+v", r.Header(), header)
	}
	var got []StepRecord
	var rec StepRecord
	for r.Next(&rec) {
		got = append(got, rec)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i, want := range records {
		g := got[i]
		if g.Episode != want.Episode || g.Step != want.Step || g.Action != want.Action ||
			g.Reward != want.Reward || g.Done != want.Done {
			t.Fatalf("record %d: %+v, want %+v", i, g, want)
		}
	}
	if a, ok := got[0].Observation["agent"]; !ok || len(a.Data) != 3 || a.Data[0] != 6 {
		t.Fatalf("observation arrays did not survive: %+v", got[0].Observation)
	}
}

func TestWriterRejectsUseAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl.zst")
	w, err := NewWriter(path, Header{Env: "Empty-5x5"})
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Write(StepRecord{}); err == nil {
		t.Fatalf("write after close accepted")
	}
	// Closing twice is harmless.
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestReaderRequiresHeader(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.jsonl.zst")); err == nil {
		t.Fatalf("missing file accepted")
	}
}
