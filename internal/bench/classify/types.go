package classify

import "github.com/DjordjeVuckovic/semsim/internal/bench/similarity"

// NoWinner marks a case where no candidate could be picked.
const NoWinner = -1

// MinCandidates is the number of usable candidates a case needs to be classified.
const MinCandidates = 2

type Status string

const (
	StatusClassified    Status = "classified"
	StatusDegenerate    Status = "degenerate"
	StatusMissingTarget Status = "missing_target"
)

// Slot is one fingerprint position in a case. An absent slot means the
// provider returned nothing for that text; an empty fingerprint is still present.
type Slot struct {
	Fingerprint similarity.Fingerprint
	Present     bool
}

func Present(fp similarity.Fingerprint) Slot {
	if fp == nil {
		fp = similarity.Fingerprint{}
	}
	return Slot{Fingerprint: fp, Present: true}
}

func Absent() Slot {
	return Slot{}
}

// SlotFromIDs maps a provider entry to a slot. A nil slice is absent.
func SlotFromIDs(ids []int) Slot {
	if ids == nil {
		return Absent()
	}
	return Present(similarity.NewFingerprint(ids))
}

type Case struct {
	Position       int
	// Line is the corpus line the case came from, zero when unknown.
	Line           int
	Target         Slot
	Candidates     []Slot
	Truth          int
	TargetText     string
	CandidateTexts []string
	Raw            string
}

type CandidateScore struct {
	Index        int     `json:"index"`
	Score        float64 `json:"score"`
	Size         int     `json:"size"`
	Intersection int     `json:"intersection"`
	Union        int     `json:"union"`
}

// Result is the outcome of classifying one case. It is never mutated after Classify returns.
type Result struct {
	Position          int              `json:"position"`
	Status            Status           `json:"status"`
	WinnerIndex       int              `json:"winner_index"`
	WinnerScore       float64          `json:"winner_score"`
	RunnerUpScore     float64          `json:"runner_up_score"`
	TieCount          int              `json:"tie_count"`
	Ambiguous         bool             `json:"ambiguous"`
	Margin            float64          `json:"margin"`
	Correct           bool             `json:"correct"`
	Truth             int              `json:"truth"`
	TargetSize        int              `json:"target_size"`
	CandidateFailures int              `json:"candidate_failures"`
	Scores            []CandidateScore `json:"scores"`
}

func (r Result) Classified() bool {
	return r.Status == StatusClassified
}

func (r Result) HasWinner() bool {
	return r.WinnerIndex != NoWinner
}

// MarginDefined reports whether at least two candidates were scored.
func (r Result) MarginDefined() bool {
	return len(r.Scores) >= MinCandidates
}
