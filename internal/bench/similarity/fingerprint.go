package similarity

import "sort"

// Fingerprint is a deduplicated set of concept identifiers extracted from a text.
// The salience order the provider returns ids in is not preserved.
type Fingerprint map[int]struct{}

func NewFingerprint(ids []int) Fingerprint {
	fp := make(Fingerprint, len(ids))
	for _, id := range ids {
		fp[id] = struct{}{}
	}
	return fp
}

func (f Fingerprint) Len() int {
	return len(f)
}

func (f Fingerprint) Contains(id int) bool {
	_, ok := f[id]
	return ok
}

// IDs returns the identifiers in ascending order.
func (f Fingerprint) IDs() []int {
	ids := make([]int, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
