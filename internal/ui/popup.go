package ui

import "strings"

// popupMargin keeps the popup this far from the viewport edges and from the
// selection it belongs to.
const popupMargin = 10

// CopyLabel is the resting label of the copy button.
const CopyLabel = "📋 Copy"

// CopiedLabel briefly replaces CopyLabel after a successful copy.
const CopiedLabel = "✅ Copied!"

// Rect is a client-space rectangle, as returned by getBoundingClientRect.
type Rect struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Viewport describes the visible window and its scroll offset.
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	ScrollY float64 `json:"scroll_y"`
}

// Size is the rendered size of the popup.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlacePopup positions the popup horizontally centered on the cursor and
// just below the selection, kept inside the viewport. When it would run off
// the bottom it goes above the selection instead.
func PlacePopup(mouseX float64, sel Rect, popup Size, vp Viewport) (left, top float64) {
	left = mouseX - popup.Width/2
	top = sel.Bottom + vp.ScrollY + popupMargin

	if left < popupMargin {
		left = popupMargin
	}
	if left+popup.Width > vp.Width-popupMargin {
		left = vp.Width - popup.Width - popupMargin
	}
	if top+popup.Height > vp.Height+vp.ScrollY-popupMargin {
		top = sel.Top + vp.ScrollY - popup.Height - popupMargin
	}
	return left, top
}

// Popup holds the selection popup state.
type Popup struct {
	text    string
	visible bool
	left    float64
	top     float64
}

// Selected returns the captured selection text.
func (p *Popup) Selected() string { return p.text }

// Visible reports whether the popup is shown.
func (p *Popup) Visible() bool { return p.visible }

// Position returns the last computed position.
func (p *Popup) Position() (left, top float64) { return p.left, p.top }

// MouseUp captures the current selection. A non-blank selection shows the
// popup near the cursor; a blank one hides it.
func (p *Popup) MouseUp(selection string, mouseX float64, sel Rect, size Size, vp Viewport) bool {
	p.text = strings.TrimSpace(selection)
	if p.text == "" {
		p.visible = false
		return false
	}
	p.left, p.top = PlacePopup(mouseX, sel, size, vp)
	p.visible = true
	return true
}

// MouseDown hides the popup and drops the captured text when the press
// lands outside it. It reports whether the popup was hidden by this press.
func (p *Popup) MouseDown(insidePopup bool) bool {
	if insidePopup {
		return false
	}
	p.text = ""
	was := p.visible
	p.visible = false
	return was
}

// Hide closes the popup without touching the captured text.
func (p *Popup) Hide() { p.visible = false }
