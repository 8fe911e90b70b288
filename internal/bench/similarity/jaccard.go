package similarity

// Overlap holds the set sizes behind a Jaccard score.
type Overlap struct {
	Intersection int
	Union        int
	Score        float64
}

// BothEmpty reports whether neither side carried any concept.
func (o Overlap) BothEmpty() bool {
	return o.Union == 0
}

// Compare computes |a ∩ b| / |a ∪ b|. Two empty fingerprints score 0.
func Compare(a, b Fingerprint) Overlap {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	var inter int
	for id := range small {
		if large.Contains(id) {
			inter++
		}
	}

	union := len(a) + len(b) - inter
	if union == 0 {
		return Overlap{}
	}

	return Overlap{
		Intersection: inter,
		Union:        union,
		Score:        float64(inter) / float64(union),
	}
}

// Score returns the Jaccard similarity of a and b in [0,1].
func Score(a, b Fingerprint) float64 {
	return Compare(a, b).Score
}
