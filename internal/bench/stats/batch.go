package stats

import (
	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
)

// BatchStats accumulates counters for one batch. Create a fresh value per batch
// with New; it is not safe for concurrent use.
type BatchStats struct {
	CasesSeen      int
	CasesProcessed int

	Correct          int
	Incorrect        int
	Ambiguous        int
	AmbiguousCorrect int

	NoWinner          int
	Degenerate        int
	MissingTargets    int
	CandidateFailures int

	EmptyFingerprints  int
	EmptyIntersections int

	TargetFingerprints    int
	CandidateFingerprints int
	SizeSum               int
	IntersectionSum       int
	UnionSum              int

	MarginSum   float64
	MarginCount int

	FormatErrors int
}

func New() *BatchStats {
	return &BatchStats{}
}

// Absorb folds one case result into the counters. Call it once per case in input order.
func (s *BatchStats) Absorb(r classify.Result) {
	s.CasesSeen++
	s.CandidateFailures += r.CandidateFailures

	if !r.HasWinner() {
		s.NoWinner++
	}

	switch r.Status {
	case classify.StatusDegenerate:
		s.Degenerate++
		return
	case classify.StatusMissingTarget:
		s.MissingTargets++
		return
	}

	s.CasesProcessed++

	if r.Correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
	if r.Ambiguous {
		s.Ambiguous++
		if r.Correct {
			s.AmbiguousCorrect++
		}
	}

	s.TargetFingerprints++
	s.SizeSum += r.TargetSize
	if r.TargetSize == 0 {
		s.EmptyFingerprints++
	}

	for _, cs := range r.Scores {
		s.CandidateFingerprints++
		s.SizeSum += cs.Size
		s.IntersectionSum += cs.Intersection
		s.UnionSum += cs.Union
		if cs.Size == 0 {
			s.EmptyFingerprints++
		}
		if cs.Intersection == 0 {
			s.EmptyIntersections++
		}
	}

	if r.MarginDefined() {
		s.MarginSum += r.Margin
		s.MarginCount++
	}
}

func (s *BatchStats) AddFormatErrors(n int) {
	s.FormatErrors += n
}

// Failures counts absent candidate fingerprints plus every case excluded from scoring.
func (s *BatchStats) Failures() int {
	return s.CandidateFailures + s.Degenerate + s.MissingTargets
}
