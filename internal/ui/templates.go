package ui

// shellTemplate is the page skeleton. Everything inside #series-nav,
// #search-results and #sidebar-search-results is filled in by patches.
const shellTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
<aside class="sidebar" style="--sidebar-width: {{.SidebarWidth}}px">
  <div class="tab-buttons">
    <button class="tab-button active" data-tab="browse">Browse</button>
    <button class="tab-button" data-tab="search">Search</button>
  </div>
  <div class="tab-panel active" id="browse-tab">
    <nav id="series-nav">{{.Nav}}</nav>
  </div>
  <div class="tab-panel" id="search-tab">
    <div class="sidebar-search">
      <input type="text" id="sidebar-search-input" placeholder="Search transcripts...">
      <button id="sidebar-search-btn">Search</button>
    </div>
    <div id="sidebar-search-results"></div>
  </div>
  <div class="sidebar-resizer"></div>
</aside>
<main class="main-content" style="margin-left: {{.SidebarWidth}}px; width: calc(100vw - {{.SidebarWidth}}px)">
  <h1 class="main-title">{{.Header}}</h1>
  <div id="search-results"></div>
</main>
<div id="selection-popup" style="display: none">
  <button id="search-selection-btn">🔍 Search</button>
  <button id="copy-selection-btn">{{.CopyLabel}}</button>
</div>
<script src="{{.BasePath}}app.js" data-ws="{{.BasePath}}ws"></script>
</body>
</html>
`

const defaultHeaderTemplate = `{{define "default-header"}}BibleProject <span class="highlight">Pod-Search</span>{{end}}`

const episodeHeaderTemplate = `{{define "episode-header"}}
<div class="episode-title">{{.Title}}</div>
<div class="series-name">{{.SeriesLine}}</div>
{{end}}`

const transcriptTemplate = `{{define "transcript"}}<div class="transcript-container">
{{- range .}}
<div class="transcript-row" id="{{.ID}}" data-start="{{.Start}}" data-end="{{.End}}">
  <div class="timestamp-column">{{if .Start}}<span class="timestamp">{{.Start}}</span>{{end}}</div>
  <div class="text-column">{{.Text}}</div>
</div>
{{- end}}
</div>{{end}}`

const loadErrorTemplate = `{{define "load-error"}}<div class="episode-header"><strong>{{.Series}}:</strong> {{.Episode}}</div>
<p style="color:red;">Could not load episode content: {{.Err}}</p>{{end}}`

const navTemplate = `{{define "nav"}}
{{- range $i, $s := .}}
<div class="series" tabindex="0" data-series-index="{{$i}}" aria-expanded="{{$s.Expanded}}">{{$s.Display}}</div>
<ul class="episodes" style="display: {{if $s.Expanded}}block{{else}}none{{end}}">
{{- range $s.Episodes}}
  <li class="episode" tabindex="0" data-series="{{.Series}}" data-episode="{{.Episode}}">{{.Display}}</li>
{{- end}}
</ul>
{{- end}}
{{end}}`

const resultsTemplate = `{{define "results"}}
{{- range .}}
<div class="sidebar-search-result" data-series="{{.Series}}" data-episode="{{.Episode}}" data-time="{{.Start}}">
  <strong>{{.Display.Series}}:</strong> {{.Episode}}{{.Display.Time}}{{.Display.Similarity}}
  <div style="font-size: 0.9em; color: #666; margin-top: 2px;">{{.Display.Snippet}}</div>
</div>
{{- else}}
<div style="color: #666; padding: 8px;">No results found.</div>
{{- end}}
{{end}}`

const (
	loadingHTML   = `<div>Loading episode...</div>`
	searchingHTML = `<div style="color: #666; padding: 8px;">Searching...</div>`
)
