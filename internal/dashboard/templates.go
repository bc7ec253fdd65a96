package dashboard

import "html/template"

type navItem struct {
	Href   string
	Title  string
	Active bool
}

type layoutData struct {
	Nav  []navItem
	Page pageView
}

var layoutTpl = template.Must(template.New("layout").Parse(`<!doctype html>
<html><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Page.Title}}</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Arial;background:#0d1117;color:#d0d7de;margin:0;display:flex}
nav{width:220px;min-height:100vh;background:#161b22;padding:20px;box-sizing:border-box}
nav a{display:block;color:#d0d7de;text-decoration:none;padding:8px 10px;border-radius:8px;margin:4px 0}
nav a.active{background:#1f6feb;color:#fff}
main{flex:1;padding:24px}
h1,h2,h3{color:#e6e6e6}
.metrics{display:flex;gap:12px;flex-wrap:wrap}
.metric{background:#161b22;padding:12px 16px;border-radius:12px;min-width:160px}
.metric .label{font-size:13px;color:#9aa7b4}.metric .value{font-size:26px;color:#e6e6e6}
iframe{width:100%;height:480px;border:0;background:#fff;border-radius:12px;margin-top:16px}
form{display:inline-block;margin-right:16px}
</style>
</head><body>
<nav>
  <h3>Navigation</h3>
  {{range .Nav}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Title}}</a>{{end}}
</nav>
<main>
  <h1>{{.Page.Title}}</h1>
  {{with .Page.Lead}}<p>{{.}}</p>{{end}}
  {{if .Page.Clusters}}
  <form method="get" action="/">
    <input type="hidden" name="page" value="explorer">
    <label>Select Cluster:
      <select name="cluster" onchange="this.form.submit()">
        {{range .Page.Clusters}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
      </select>
    </label>
  </form>
  {{end}}
  {{with .Page.Heading}}<h2>{{.}}</h2>{{end}}
  {{if .Page.Metrics}}
  <div class="metrics">
    {{range .Page.Metrics}}<div class="metric"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>{{end}}
  </div>
  {{end}}
  {{if .Page.Features}}
  <form method="get" action="/">
    <input type="hidden" name="page" value="explorer">
    <label>Feature Distribution:
      <select name="feature" onchange="this.form.submit()">
        {{range .Page.Features}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
      </select>
    </label>
  </form>
  {{end}}
  {{range .Page.Charts}}<iframe src="{{.}}"></iframe>{{end}}
  {{if .Page.Summaries}}
  <ul>{{range .Page.Summaries}}<li><strong>{{.Label}}</strong> → {{.Value}}</li>{{end}}</ul>
  {{end}}
</main>
</body></html>
`))

var unavailableTpl = template.Must(template.New("unavailable").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Dataset unavailable</title></head>
<body style="font-family:system-ui,Arial;background:#0d1117;color:#d0d7de;padding:24px">
<h1>Dataset unavailable</h1>
<p>The customer dataset could not be loaded, so the dashboard cannot be rendered.</p>
<pre>{{.}}</pre>
</body></html>
`))
