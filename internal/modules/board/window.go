package board

import "math"

const (
	// Columns longer than this render through a window instead of
	// materializing every row.
	VirtualizationThreshold = 10

	// Rows kept rendered on each side of the visible region.
	OverscanRows = 3

	// Assumed row height until the client reports measured heights.
	EstimatedRowHeight = 96.0
)

// Window is the half-open index range [Start, End) a client should
// materialize. When Virtualized is false the range covers the whole list.
type Window struct {
	Start       int  `json:"start"`
	End         int  `json:"end"`
	Virtualized bool `json:"virtualized"`
}

// Virtualized reports whether a column of count leads renders windowed.
func Virtualized(count int) bool {
	return count > VirtualizationThreshold
}

// WindowFor computes the materialized range for a column. rowHeight <= 0
// falls back to the estimate. The underlying list is never affected:
// virtualization only decides what gets rendered.
func WindowFor(count int, scrollTop, viewportHeight, rowHeight float64) Window {
	if count < 0 {
		count = 0
	}
	if !Virtualized(count) {
		return Window{Start: 0, End: count, Virtualized: false}
	}

	if rowHeight <= 0 {
		rowHeight = EstimatedRowHeight
	}
	if scrollTop < 0 {
		scrollTop = 0
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}

	first := int(math.Floor(scrollTop / rowHeight))
	visible := int(math.Ceil(viewportHeight/rowHeight)) + 1

	start := first - OverscanRows
	if start < 0 {
		start = 0
	}
	end := first + visible + OverscanRows
	if end > count {
		end = count
	}
	if start > end {
		start = end
	}

	return Window{Start: start, End: end, Virtualized: true}
}
