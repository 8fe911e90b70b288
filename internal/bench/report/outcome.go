package report

import (
	"strconv"

	"github.com/DjordjeVuckovic/semsim/internal/bench/classify"
	"github.com/fatih/color"
)

type Outcome string

const (
	OutcomeCorrect            Outcome = "correct"
	OutcomeIncorrect          Outcome = "incorrect"
	OutcomeAmbiguousCorrect   Outcome = "ambiguous_correct"
	OutcomeAmbiguousIncorrect Outcome = "ambiguous_incorrect"
	OutcomeNoWinner           Outcome = "no_winner"
)

func OutcomeOf(r classify.Result) Outcome {
	switch {
	case !r.HasWinner():
		return OutcomeNoWinner
	case r.Correct && r.Ambiguous:
		return OutcomeAmbiguousCorrect
	case r.Correct:
		return OutcomeCorrect
	case r.Ambiguous:
		return OutcomeAmbiguousIncorrect
	default:
		return OutcomeIncorrect
	}
}

// IsFailure reports whether the case belongs in the failure file: wrong guesses
// and correct guesses that only won a tie.
func IsFailure(r classify.Result) bool {
	o := OutcomeOf(r)
	return o == OutcomeIncorrect || o == OutcomeAmbiguousIncorrect || o == OutcomeAmbiguousCorrect
}

type Label string

const (
	LabelWin       Label = "WIN"
	LabelRunnerUp  Label = "2ND"
	LabelAmbiguous Label = "AMB"
	LabelFail      Label = "FAIL"
	LabelNone      Label = ""
)

// CandidateLabel marks a scored candidate in the per-case table.
func CandidateLabel(r classify.Result, cs classify.CandidateScore) Label {
	if cs.Index == r.WinnerIndex {
		if r.Truth != cs.Index {
			return LabelFail
		}
		if cs.Score == r.RunnerUpScore {
			return LabelAmbiguous
		}
		return LabelWin
	}
	if cs.Score == r.RunnerUpScore {
		if r.WinnerScore == r.RunnerUpScore {
			return LabelAmbiguous
		}
		return LabelRunnerUp
	}
	return LabelNone
}

var labelColors = map[Label][]color.Attribute{
	LabelWin:       {color.FgGreen},
	LabelAmbiguous: {color.FgYellow},
	LabelFail:      {color.FgRed},
}

// palette paints strings unless plain is set. Files always get plain output.
type palette struct {
	plain bool
}

func (p palette) paint(s string, attrs ...color.Attribute) string {
	if p.plain || len(attrs) == 0 {
		return s
	}
	return color.New(attrs...).Sprint(s)
}

func (p palette) label(l Label) string {
	return p.paint(string(l), labelColors[l]...)
}

// stripSymbol is the one-character rendering of a case in the outcome strip.
func (p palette) stripSymbol(r classify.Result) string {
	switch OutcomeOf(r) {
	case OutcomeNoWinner:
		return p.paint("?", color.FgBlue)
	case OutcomeAmbiguousCorrect:
		return p.paint("=", color.FgGreen)
	case OutcomeCorrect:
		return p.paint(strconv.Itoa(r.WinnerIndex), color.FgGreen)
	case OutcomeAmbiguousIncorrect:
		return p.paint("=", color.FgRed)
	default:
		return p.paint(strconv.Itoa(r.WinnerIndex), color.FgRed)
	}
}
