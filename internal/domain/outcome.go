package domain

// Outcome classifies the result of a single asset fetch. Per-file failures
// are reported as values so the enclosing loop can log them and keep going.
type Outcome int

const (
	// OutcomeSuccess means the asset was fetched and written to disk
	OutcomeSuccess Outcome = iota

	// OutcomeNotFound means the remote reported the asset missing (HTTP 404)
	OutcomeNotFound

	// OutcomeFailed means any other transport or write error occurred
	OutcomeFailed

	// OutcomeSkipped means a non-empty local copy already existed and
	// skip-existing mode left it alone
	OutcomeSkipped
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// FetchStats aggregates per-file outcomes over one download phase.
type FetchStats struct {
	Success  int
	NotFound int
	Failed   int
	Skipped  int
}

// Record counts one outcome.
func (s *FetchStats) Record(o Outcome) {
	switch o {
	case OutcomeSuccess:
		s.Success++
	case OutcomeNotFound:
		s.NotFound++
	case OutcomeFailed:
		s.Failed++
	case OutcomeSkipped:
		s.Skipped++
	}
}

// Attempted returns the total number of fetches recorded.
func (s *FetchStats) Attempted() int {
	return s.Success + s.NotFound + s.Failed + s.Skipped
}

// Add merges another phase's counters into s.
func (s *FetchStats) Add(other FetchStats) {
	s.Success += other.Success
	s.NotFound += other.NotFound
	s.Failed += other.Failed
	s.Skipped += other.Skipped
}
