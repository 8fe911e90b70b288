package classify

import "github.com/DjordjeVuckovic/semsim/internal/bench/similarity"

// unscored sits below every valid Jaccard score.
const unscored = -1.0

// Classify picks the candidate most similar to the target in a single forward pass.
//
// Ties keep the earliest candidate as the winner and count toward TieCount; the
// runner-up then equals the top score, so a tied case has a zero margin. Cases with
// an absent target or fewer than MinCandidates usable candidates are not scored.
func Classify(c Case) Result {
	r := Result{
		Position:    c.Position,
		Truth:       c.Truth,
		WinnerIndex: NoWinner,
	}

	usable := 0
	for _, slot := range c.Candidates {
		if slot.Present {
			usable++
		}
	}
	r.CandidateFailures = len(c.Candidates) - usable

	if !c.Target.Present {
		r.Status = StatusMissingTarget
		return r
	}
	if usable < MinCandidates {
		r.Status = StatusDegenerate
		return r
	}

	r.Status = StatusClassified
	r.TargetSize = c.Target.Fingerprint.Len()
	r.Scores = make([]CandidateScore, 0, usable)

	winnerScore, runnerUpScore := unscored, unscored

	for i, slot := range c.Candidates {
		if !slot.Present {
			continue
		}

		ov := similarity.Compare(c.Target.Fingerprint, slot.Fingerprint)
		s := ov.Score

		switch {
		case s == winnerScore:
			runnerUpScore = s
			r.TieCount++
		case s > winnerScore:
			runnerUpScore = winnerScore
			winnerScore = s
			r.WinnerIndex = i
			r.TieCount = 0
		case s > runnerUpScore:
			runnerUpScore = s
		}

		r.Scores = append(r.Scores, CandidateScore{
			Index:        i,
			Score:        s,
			Size:         slot.Fingerprint.Len(),
			Intersection: ov.Intersection,
			Union:        ov.Union,
		})
	}

	r.WinnerScore = winnerScore
	r.RunnerUpScore = runnerUpScore
	if r.MarginDefined() {
		r.Margin = winnerScore - runnerUpScore
	}
	r.Ambiguous = r.TieCount > 0
	r.Correct = r.WinnerIndex == c.Truth

	return r
}
