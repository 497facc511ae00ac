package web

// The HTML shell is deliberately plain: one stylesheet-free layout driven by
// the data-driven field specs, so localization happens entirely through the
// page's T/Opt helpers at render time.
const templateSrc = `
{{define "head"}}<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} — {{.T "core_app_name"}}</title>
</head>
<body>
<header>
  <h1><a href="/">{{.T "core_app_name"}}</a></h1>
  <p>{{.T "core_tagline"}}</p>
  <nav>
    <a href="/set_language/en">English</a> | <a href="/set_language/ha">Hausa</a>
  </nav>
</header>
{{range .Flashes}}<div class="flash flash-{{.Level}}">{{.Message}}</div>
{{end}}
<main>
{{end}}

{{define "foot"}}
</main>
</body>
</html>{{end}}

{{define "landing"}}{{template "head" .}}
<ul class="tools">
{{range .ToolLinks}}  <li><a href="/{{.Name}}/step1">{{$.T .TitleKey}}</a></li>
{{end}}  <li><a href="/learn">{{.T "learn_title"}}</a></li>
</ul>
{{template "foot" .}}{{end}}

{{define "step"}}{{template "head" .}}
<h2>{{.Title}}</h2>
<p>{{.StepOf}}</p>
<form method="post" action="/{{.Step.Tool.Name}}/step{{.Step.Step}}">
  <input type="hidden" name="_csrf" value="{{.CSRF}}">
{{range .Step.Fields}}
  <div class="field">
    <label for="{{.Name}}">{{$.T .LabelKey}}</label>
{{if .IsEnum}}    <select id="{{.Name}}" name="{{.Name}}">
{{$cur := index $.Step.Values .Name}}{{range .Options}}      <option value="{{.}}"{{if eq . $cur}} selected{{end}}>{{$.Opt .}}</option>
{{end}}    </select>
{{else if .IsBool}}    <input type="checkbox" id="{{.Name}}" name="{{.Name}}" value="true"{{if eq (index $.Step.Values .Name) "true"}} checked{{end}}>
{{else}}    <input type="{{.InputType}}" id="{{.Name}}" name="{{.Name}}" value="{{index $.Step.Values .Name}}">
{{end}}{{with index $.Step.Errors .Name}}    <span class="error">{{.}}</span>
{{end}}  </div>
{{end}}
  <button type="submit">{{if .Step.Last}}{{.T "core_submit"}}{{else}}{{.T "core_next"}}{{end}}</button>
</form>
{{template "foot" .}}{{end}}

{{define "dashboard"}}{{template "head" .}}
<h2>{{.Title}}</h2>
{{if not .Records}}<p>{{.T "core_dashboard_empty"}}</p>
{{else}}{{range .Records}}
<section class="record">
  <h3>{{.Timestamp}}</h3>
  <table>
{{range $k, $v := .Data}}    <tr><th>{{$k}}</th><td>{{$v}}</td></tr>
{{end}}  </table>
</section>
{{end}}<p><a href="/{{.Tool}}/export.csv">CSV</a></p>
{{end}}
<p><a href="/{{.Tool}}/step1">{{.T "core_back"}}</a></p>
{{template "foot" .}}{{end}}

{{define "bills"}}{{template "head" .}}
<h2>{{.Title}}</h2>
{{if not .Records}}<p>{{.T "core_dashboard_empty"}}</p>{{end}}
{{range .Records}}
<section class="bill">
  <h3>{{index .Data "bill_name"}} — {{$.Opt (printf "%v" (index .Data "status"))}}</h3>
  <p>{{index .Data "amount"}} · {{index .Data "due_date"}} · {{$.Opt (printf "%v" (index .Data "frequency"))}}</p>
  <form method="post" action="/bill/view_edit">
    <input type="hidden" name="_csrf" value="{{$.CSRF}}">
    <input type="hidden" name="id" value="{{.ID}}">
    <button name="action" value="toggle_status">{{$.T "bill_action_toggle"}}</button>
    <button name="action" value="delete">{{$.T "bill_action_delete"}}</button>
    <a href="/bill/view_edit?id={{.ID}}">{{$.T "bill_action_edit"}}</a>
  </form>
</section>
{{end}}
{{if .EditID}}
<h3>{{.T "bill_step2_title"}}</h3>
<form method="post" action="/bill/view_edit">
  <input type="hidden" name="_csrf" value="{{.CSRF}}">
  <input type="hidden" name="id" value="{{.EditID}}">
  <input type="hidden" name="action" value="edit">
{{range .EditFields}}
  <div class="field">
    <label for="edit_{{.Name}}">{{$.T .LabelKey}}</label>
{{if .IsEnum}}    <select id="edit_{{.Name}}" name="{{.Name}}">
{{$cur := index $.EditValues .Name}}{{range .Options}}      <option value="{{.}}"{{if eq . $cur}} selected{{end}}>{{$.Opt .}}</option>
{{end}}    </select>
{{else if .IsBool}}    <input type="checkbox" id="edit_{{.Name}}" name="{{.Name}}" value="true"{{if eq (index $.EditValues .Name) "true"}} checked{{end}}>
{{else}}    <input type="{{.InputType}}" id="edit_{{.Name}}" name="{{.Name}}" value="{{index $.EditValues .Name}}">
{{end}}{{with index $.EditErrors .Name}}    <span class="error">{{.}}</span>
{{end}}  </div>
{{end}}
  <button type="submit">{{.T "core_submit"}}</button>
</form>
{{end}}
<p><a href="/bill/step1">{{.T "core_back"}}</a></p>
{{template "foot" .}}{{end}}

{{define "learn"}}{{template "head" .}}
<h2>{{.Title}}</h2>
{{if not .Courses}}<p>{{.T "learn_empty"}}</p>{{end}}
<ul>
{{range .Courses}}  <li><a href="/learn/{{.ID}}">{{if eq $.Lang "ha"}}{{.TitleHA}}{{else}}{{.TitleEN}}{{end}}</a></li>
{{end}}</ul>
{{template "foot" .}}{{end}}

{{define "course"}}{{template "head" .}}
<h2>{{.Title}}</h2>
{{range .Course.Lessons}}
<article>
  <h3>{{if eq $.Lang "ha"}}{{.TitleHA}}{{else}}{{.TitleEN}}{{end}}</h3>
  <p>{{if eq $.Lang "ha"}}{{.BodyHA}}{{else}}{{.BodyEN}}{{end}}</p>
</article>
{{end}}
<p><a href="/learn">{{.T "core_back"}}</a></p>
{{template "foot" .}}{{end}}

{{define "error"}}{{template "head" .}}
<h2>{{.Title}}</h2>
<p><a href="/">{{.T "core_back"}}</a></p>
{{template "foot" .}}{{end}}
`
