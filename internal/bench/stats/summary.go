package stats

import "github.com/DjordjeVuckovic/semsim/pkg/utils"

type Summary struct {
	Accuracy                float64 `json:"accuracy"`
	AverageMargin           float64 `json:"average_margin"`
	CasesSeen               int     `json:"cases_seen"`
	CasesProcessed          int     `json:"cases_processed"`
	Correct                 int     `json:"correct"`
	Incorrect               int     `json:"incorrect"`
	Ambiguous               int     `json:"ambiguous"`
	AmbiguousCorrect        int     `json:"ambiguous_correct"`
	Failures                int     `json:"failures"`
	CandidateFailures       int     `json:"candidate_failures"`
	Degenerate              int     `json:"degenerate"`
	MissingTargets          int     `json:"missing_targets"`
	NoWinner                int     `json:"no_winner"`
	EmptyFingerprints       int     `json:"empty_fingerprints"`
	EmptyIntersections      int     `json:"empty_intersections"`
	AverageFingerprintSize  float64 `json:"average_fingerprint_size"`
	AverageIntersectionSize float64 `json:"average_intersection_size"`
	AverageUnionSize        float64 `json:"average_union_size"`
	FormatErrors            int     `json:"format_errors"`
}

// Finalize derives the batch rates. Every division is guarded, so an empty batch
// yields an all-zero summary.
func (s *BatchStats) Finalize() Summary {
	sum := Summary{
		CasesSeen:          s.CasesSeen,
		CasesProcessed:     s.CasesProcessed,
		Correct:            s.Correct,
		Incorrect:          s.Incorrect,
		Ambiguous:          s.Ambiguous,
		AmbiguousCorrect:   s.AmbiguousCorrect,
		Failures:           s.Failures(),
		CandidateFailures:  s.CandidateFailures,
		Degenerate:         s.Degenerate,
		MissingTargets:     s.MissingTargets,
		NoWinner:           s.NoWinner,
		EmptyFingerprints:  s.EmptyFingerprints,
		EmptyIntersections: s.EmptyIntersections,
		FormatErrors:       s.FormatErrors,
	}

	if s.CasesProcessed > 0 {
		n := float64(s.CasesProcessed)
		sum.Accuracy = utils.RoundDecimal(100*float64(s.Correct)/n, 1)
		sum.AverageMargin = utils.RoundDecimal(100*s.MarginSum/n, 2)
	}

	if fingerprints := s.TargetFingerprints + s.CandidateFingerprints; fingerprints > 0 {
		n := float64(fingerprints)
		sum.AverageFingerprintSize = utils.RoundDecimal(float64(s.SizeSum)/n, 2)
		sum.AverageIntersectionSize = utils.RoundDecimal(float64(s.IntersectionSum)/n, 2)
		sum.AverageUnionSize = utils.RoundDecimal(float64(s.UnionSum)/n, 2)
	}

	return sum
}
