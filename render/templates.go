package render

import (
	"strings"
	"text/template"
)

var (
	tmplFuncs = template.FuncMap{
		"indent": indent,
		"escape": escape,
	}
	xmlTemplate = template.Must(template.New("").Funcs(tmplFuncs).Parse(xmlSource))
)

const xmlSource = `
{{- define "xml" -}}
{{- range . -}}
{{ indent .Depth }}{{ if .Leaf }}<{{ .Tag }}> {{ .Value | escape }} </{{ .Tag }}>{{ else if .Close }}</{{ .Tag }}>{{ else }}<{{ .Tag }}>{{ end }}
{{ end -}}
{{- end }}
`

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}
