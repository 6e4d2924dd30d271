package ui

import "fmt"

// Sidebar width bounds, in pixels.
const (
	MinSidebarWidth     = 200
	MaxSidebarWidth     = 600
	DefaultSidebarWidth = 300
)

// ClampWidth bounds w to [lo, hi].
func ClampWidth(w, lo, hi int) int {
	if w < lo {
		return lo
	}
	if w > hi {
		return hi
	}
	return w
}

// Layout is the style applied to the sidebar and main content for a width.
type Layout struct {
	SidebarWidth string
	MarginLeft   string
	ContentWidth string
}

// LayoutFor computes the sidebar variable and the main content geometry.
func LayoutFor(width int) Layout {
	px := fmt.Sprintf("%dpx", width)
	return Layout{
		SidebarWidth: px,
		MarginLeft:   px,
		ContentWidth: "calc(100vw - " + px + ")",
	}
}

// Resizer follows a drag on the sidebar handle.
type Resizer struct {
	min, max   int
	width      int
	resizing   bool
	startX     int
	startWidth int
}

// NewResizer creates a Resizer starting at width.
func NewResizer(width, lo, hi int) *Resizer {
	if lo <= 0 {
		lo = MinSidebarWidth
	}
	if hi < lo {
		hi = MaxSidebarWidth
	}
	return &Resizer{min: lo, max: hi, width: ClampWidth(width, lo, hi)}
}

// Width returns the current sidebar width.
func (r *Resizer) Width() int { return r.width }

// Resizing reports whether a drag is in progress.
func (r *Resizer) Resizing() bool { return r.resizing }

// Start records where a drag began. Starting again mid-drag restarts it.
func (r *Resizer) Start(x int) {
	r.resizing = true
	r.startX = x
	r.startWidth = r.width
}

// Move applies the cursor position of an ongoing drag and returns the new
// width. It reports false if no drag is in progress.
func (r *Resizer) Move(x int) (int, bool) {
	if !r.resizing {
		return r.width, false
	}
	r.width = ClampWidth(r.startWidth+x-r.startX, r.min, r.max)
	return r.width, true
}

// Stop ends the drag.
func (r *Resizer) Stop() { r.resizing = false }
