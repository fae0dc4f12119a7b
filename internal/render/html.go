// Package render turns the presentation model into the HTML page. All
// markup and styling lives here; the model only carries data and
// flags.
package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/debamax/apt-webindex/internal/index"
	"github.com/debamax/apt-webindex/internal/models"
)

const css = `
h1 {
  text-align: center;
  color: #a80030;
  text-decoration: underline;
}
h4 {
  text-align: center;
  font-weight: normal;
}
table {
  width: 100%;
  border: 1px solid #333;
  border-collapse: collapse;
}
th {
  background-color: #a80030;
  color: #FFF;
}
th.distribution {
  background-color: #880020;
}
td {
  vertical-align: top;
  border: 1px solid black;
  padding: 2px 5px;
  white-space: nowrap;
}
td.centered {
  text-align: center;
}
td.versions {
  white-space: normal;
}
td.delayed {
  font-style: italic;
}
.mono {
  font-family: monospace;
}

/* Multi-dist support: try to align columns across tables */
.col1 { width: 15%; }
.col2 { width: 10%; }
.col3 { width:  5%; }
.col4 { width: 70%; }

/* Newness indicators, the higher the hotter */
.hot1 { background-color: #555753; }
.hot2 { background-color: #d3d7cf; }
.hot3 { background-color: #edd400; }
.hot4 { background-color: #f57900; }
.hot5 { background-color: #cc0000; }
`

const page = `<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<style>{{css}}</style>
</head>
<body>
<h1>{{.Title}}</h1>
<h4>Available distributions:
{{- range $i, $d := .Dists}}{{if $i}} |{{end}} <a class="mono" href="#{{$d.Name}}">{{$d.Name}}</a>{{end}}
&mdash; direct access: <a class="mono" href="dists/">dists</a> | <a class="mono" href="pool/">pool</a>
&mdash; freshness scale:{{range tiers}} <span class="hot{{.}}">&nbsp;&nbsp;&nbsp;&nbsp;</span>{{end}}</h4>
{{range .Dists}}<table>
<tr id="{{.Name}}"><th class="distribution" colspan="4">Distribution: {{.Name}}{{with .Release}}{{if .Origin}} &mdash; {{.Origin}}{{end}}{{if .Date}} ({{.Date}}){{end}}{{end}}{{if .Signed}}{{if deref .Signed}} &mdash; signed{{else}} &mdash; BAD SIGNATURE{{end}}{{end}}</th></tr>
<tr><th class="col1">Package<br>name</th><th class="col2">Newest<br>versions</th><th class="col3">Newest<br>debs</th><th class="col4">Older<br>versions</th></tr>
{{range .Rows}}<tr>
<td><a href="{{.PoolDir}}">{{.Package}}</a></td>
<td class="centered hot{{.Freshness.Tier}}" title="{{.Tooltip}}">{{.Newest}}</td>
<td class="{{if .Delayed}}centered delayed{{else}}centered{{end}}"{{if .Delayed}} title="possibly delayed build"{{end}}>{{debs .Artifacts}}</td>
<td class="versions">{{join .Older " | "}}</td>
</tr>
{{end}}</table>
<br>
{{end}}</body>
</html>
`

var tmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"css":   func() template.CSS { return template.CSS(css) },
	"tiers": func() []int { return []int{1, 2, 3, 4, 5} },
	"join":  strings.Join,
	"deref": func(b *bool) bool { return b != nil && *b },
	"debs":  debLinks,
}).Parse(page))

// debLinks renders the per-architecture links of the newest version,
// joined by the same separator the version lists use.
func debLinks(artifacts []models.Artifact) template.HTML {
	var b strings.Builder
	for i, art := range artifacts {
		if i != 0 {
			b.WriteString(" | ")
		}
		fmt.Fprintf(&b, `<a href="%s">%s</a>`,
			template.HTMLEscapeString(art.Filename),
			template.HTMLEscapeString(art.Architecture))
	}
	return template.HTML(b.String())
}

// Render writes the HTML document for an overview.
func Render(w io.Writer, overview index.Overview) error {
	return tmpl.Execute(w, overview)
}
