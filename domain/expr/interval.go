package expr

// Interval is a closed confidence interval for a group mean.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Overlaps reports whether two intervals intersect. Intervals touching
// at a single point count as overlapping (inclusive boundary).
func (a Interval) Overlaps(b Interval) bool {
	upper := a.Upper
	if b.Upper < upper {
		upper = b.Upper
	}
	lower := a.Lower
	if b.Lower > lower {
		lower = b.Lower
	}
	return upper-lower >= 0
}
