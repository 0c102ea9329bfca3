package web

import (
	"bytes"
	"html/template"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Four Player Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(indexTemplate))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div hx-sse="swap:board">{{template "board" .}}</div>
</div>`))
	board := template.Must(template.New("board_only").Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, data any) []byte {
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.Bytes()
}

const indexTemplate = `<h1>Four Player Tic-Tac-Toe</h1>
<p>5x5 board, three in a row wins. Computer players fill the empty seats.</p>
{{range .Options}}
<form action="/game" method="post">
  <input type="hidden" name="humans" value="{{.}}">
  <button type="submit"{{if eq . $.Default}} autofocus{{end}}>{{.}} human{{if ne . 1}}s{{end}}</button>
</form>
{{end}}`

const boardTemplate = `
<div id="board">
  <h2>{{.Status}}</h2>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{/* 5x5 grid */}}
  {{range .Rows}}
  <div class="row">
    {{range .}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="seat" value="{{$.Turn}}">
        <input type="hidden" name="pos" value="{{.Pos}}">
        <button type="submit" class="tile{{if .Symbol}} filled{{end}}{{if .Winning}} winning-tile{{end}}"{{if $.Over}} disabled{{end}}>{{.Symbol}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
  <form hx-post="/game/{{.ID}}/reset" hx-target="#board" hx-swap="outerHTML" method="post">
    <button type="submit">Restart</button>
  </form>
</div>
`
