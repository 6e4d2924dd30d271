package ui

// PatchOp names a change the browser applies to its document.
type PatchOp string

const (
	OpHTML      PatchOp = "html"
	OpText      PatchOp = "text"
	OpAttr      PatchOp = "attr"
	OpStyle     PatchOp = "style"
	OpClass     PatchOp = "class"
	OpScroll    PatchOp = "scroll"
	OpValue     PatchOp = "value"
	OpFocus     PatchOp = "focus"
	OpClipboard PatchOp = "clipboard"
)

// Patch is one document change. ID addresses an element by id; otherwise
// Target is a CSS selector and the change applies to every match.
type Patch struct {
	Op     PatchOp `json:"op"`
	ID     string  `json:"id,omitempty"`
	Target string  `json:"target,omitempty"`
	HTML   string  `json:"html,omitempty"`
	Name   string  `json:"name,omitempty"`
	Value  string  `json:"value,omitempty"`
	On     bool    `json:"on,omitempty"`
}

// Emitter delivers patches to a browser.
type Emitter interface {
	Emit(patches ...Patch)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(patches ...Patch)

func (f EmitterFunc) Emit(patches ...Patch) { f(patches...) }

// Well-known element addresses.
const (
	resultsID        = "search-results"
	searchResultsID  = "sidebar-search-results"
	searchInputID    = "sidebar-search-input"
	popupID          = "selection-popup"
	copyButtonID     = "copy-selection-btn"
	navID            = "series-nav"
	headerSelector   = ".main-title"
	sidebarSelector  = ".sidebar"
	contentSelector  = ".main-content"
	tabButtonPrefix  = `.tab-button[data-tab="`
	seriesIndexAttr  = "data-series-index"
	sidebarWidthProp = "--sidebar-width"
)

func setHTML(id, html string) Patch { return Patch{Op: OpHTML, ID: id, HTML: html} }

func setStyle(id, target, name, value string) Patch {
	return Patch{Op: OpStyle, ID: id, Target: target, Name: name, Value: value}
}
