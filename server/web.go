package server

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ============================================================================
// PAGE SHELLS
// ============================================================================
// The pages are deliberately thin: a nav, a mount point, and a script that
// calls the JSON API. All query semantics live in the engine; the shell only
// renders what the API returns.
// ============================================================================

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} — {{.PageName}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #1f2937; }
nav a { margin-right: 1rem; }
nav a.active { font-weight: bold; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #d1d5db; padding: 0.3rem 0.6rem; }
.cards { display: flex; gap: 1rem; margin: 1rem 0; flex-wrap: wrap; }
.card { border: 1px solid #d1d5db; border-radius: 6px; padding: 0.8rem 1.2rem; }
.notice { color: #92400e; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<nav>
  <a href="/" {{if eq .Page "overview"}}class="active"{{end}}>Overview</a>
  <a href="/search" {{if eq .Page "search"}}class="active"{{end}}>Search</a>
  <a href="/statistics" {{if eq .Page "statistics"}}class="active"{{end}}>Statistics</a>
  <a href="/about" {{if eq .Page "about"}}class="active"{{end}}>About</a>
</nav>
<div id="app" data-page="{{.Page}}"></div>
<script src="/static/app.js"></script>
</body>
</html>
`))

type pageData struct {
	Title    string
	Page     string
	PageName string
}

var pageNames = map[string]string{
	"overview":   "Overview",
	"search":     "Search",
	"statistics": "Statistics",
	"about":      "About",
}

// appJS drives all four pages from the JSON API.
const appJS = `
const app = document.getElementById('app');
const page = app.dataset.page;

function table(t) {
  if (!t || !t.rows.length) return '<p>No results found. Try different filters.</p>';
  let h = '<table><tr>' + t.columns.map(c => '<th>' + c.label + '</th>').join('') + '</tr>';
  for (const row of t.rows) h += '<tr>' + row.map(c => '<td>' + c + '</td>').join('') + '</tr>';
  return h + '</table>';
}

function bars(chart) {
  if (!chart) return '<p>not available</p>';
  const pts = chart.series[0].data;
  const max = Math.max(...pts.map(p => p.value), 1);
  return '<h3>' + chart.title + '</h3>' + pts.map(p =>
    '<div>' + p.label + ' <span style="display:inline-block;background:#4F46E5;height:0.8em;width:' +
    (p.value / max * 300) + 'px"></span> ' + p.value + '</div>').join('');
}

async function getJSON(url) { return (await fetch(url)).json(); }

async function overview() {
  const s = await getJSON('/api/summary');
  const t = await getJSON('/api/timeline');
  app.innerHTML =
    (s.notice ? '<p class="notice">' + s.notice + '</p>' : '') +
    '<div class="cards">' + s.cards.map(c =>
      '<div class="card"><div>' + c.label + '</div><strong>' + c.value + '</strong></div>').join('') +
    '</div>' + bars(t.chart) + '<h3>Recent Inscriptions</h3>' + table(s.recent);
}

async function searchPage() {
  const opts = await getJSON('/api/options');
  let selects = '';
  for (const [field, values] of Object.entries(opts.options)) {
    selects += '<label>' + field + ' <select data-field="' + field + '">' +
      values.map(v => '<option>' + v + '</option>').join('') + '</select></label> ';
  }
  app.innerHTML = '<p><input id="q" placeholder="Search all fields"> ' + selects +
    '<button id="go">Search</button> <a id="dl" href="/api/export">Download CSV</a></p><div id="results"></div>';
  const run = async () => {
    const params = new URLSearchParams();
    const q = document.getElementById('q').value;
    if (q) params.append('q', q);
    for (const sel of app.querySelectorAll('select')) {
      if (sel.value !== 'All') params.append('f', sel.dataset.field + ':' + sel.value);
    }
    document.getElementById('dl').href = '/api/export?' + params;
    const r = await getJSON('/api/records?' + params);
    document.getElementById('results').innerHTML =
      '<p>Found <strong>' + r.total + '</strong> results</p>' + table(r.table);
  };
  document.getElementById('go').onclick = run;
  run();
}

async function statistics() {
  const r = await getJSON('/api/stats');
  app.innerHTML = r.stats.map(s => bars(s.chart)).join('<hr>') || '<p>not available</p>';
}

function about() {
  app.innerHTML = '<p>Browse, filter, and visualize a tabular dataset of Latin inscriptions.</p>' +
    '<p>Data from Zenodo. Upload a CSV via POST /api/upload to replace the loaded dataset.</p>';
}

({overview, search: searchPage, statistics, about}[page] || about)();
`

// AppJS serves the dashboard script.
func (s *Server) AppJS(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/javascript; charset=utf-8", []byte(appJS))
}

// Page renders the shell for one dashboard page.
func (s *Server) Page(page string) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		return pageTmpl.Execute(c.Response(), pageData{
			Title:    s.title,
			Page:     page,
			PageName: pageNames[page],
		})
	}
}
