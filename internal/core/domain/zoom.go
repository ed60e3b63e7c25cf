package domain

// ZoomRange identifies the half-open sortOrder interval of the currently
// focused subtree. A nil End means "through the end of the document".
// The range is derived from the zoomed heading's level and is recomputed
// whenever block order changes while zoomed.
type ZoomRange struct {
	// Start is the sortOrder of the zoomed heading.
	Start float64

	// End is the sortOrder of the next heading at the same or shallower
	// level, or nil if none exists.
	End *float64
}

// Contains reports whether a sortOrder falls inside the range.
func (r ZoomRange) Contains(order float64) bool {
	if order < r.Start {
		return false
	}
	return r.End == nil || order < *r.End
}
