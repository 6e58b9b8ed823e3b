package domain

import "testing"

func TestFetchStatsRecord(t *testing.T) {
	var stats FetchStats
	for _, o := range []Outcome{
		OutcomeSuccess, OutcomeSuccess, OutcomeNotFound, OutcomeFailed, OutcomeSkipped,
	} {
		stats.Record(o)
	}

	if stats.Success != 2 || stats.NotFound != 1 || stats.Failed != 1 || stats.Skipped != 1 {
		t.Errorf("unexpected counters: %+v", stats)
	}
	if stats.Attempted() != 5 {
		t.Errorf("expected 5 attempted, got %d", stats.Attempted())
	}
}

func TestFetchStatsAdd(t *testing.T) {
	a := FetchStats{Success: 1, NotFound: 2}
	a.Add(FetchStats{Success: 3, Failed: 1})

	if a.Success != 4 || a.NotFound != 2 || a.Failed != 1 {
		t.Errorf("unexpected merged counters: %+v", a)
	}
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeSuccess:  "success",
		OutcomeNotFound: "not_found",
		OutcomeFailed:   "failed",
		OutcomeSkipped:  "skipped",
		Outcome(99):     "unknown",
	}
	for o, want := range cases {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", o, got, want)
		}
	}
}

func TestFixedManifestIsCopied(t *testing.T) {
	m := FixedManifest()
	if len(m) != 13 {
		t.Fatalf("expected 13 manifest entries, got %d", len(m))
	}
	if m[0] != "captions.json" {
		t.Errorf("unexpected first entry %q", m[0])
	}

	m[0] = "tampered"
	if got := FixedManifest()[0]; got != "captions.json" {
		t.Errorf("manifest order must be immutable, got %q", got)
	}
}

func TestAssetPaths(t *testing.T) {
	if got := SlidePath("e1", 3); got != "presentation/e1/slide-3.png" {
		t.Errorf("unexpected slide path %q", got)
	}
	if got := ThumbnailPath("e1", 3); got != "presentation/e1/thumbnails/thumb-3.png" {
		t.Errorf("unexpected thumbnail path %q", got)
	}
}
