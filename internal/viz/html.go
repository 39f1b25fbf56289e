package viz

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Funcs(template.FuncMap{
		"pillWidth": pillWidth,
		"isRoot":    func(t string) bool { return t == "root" },
		"isItem":    func(t string) bool { return t == "item" },
	}).Parse(sceneTemplate + htmlTemplate))
}

// Output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatHTML = "html"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatJSON, FormatSVG, FormatHTML}

// ErrUnsupportedFormat is returned by Render for an unknown format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title string
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{Title: "Prayer Map"}
}

// Render produces the scene in the given format.
func Render(data *GraphData, format string, opts HTMLOptions) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		return data.ToJSON()
	case FormatSVG:
		return GenerateSVG(data)
	case FormatHTML:
		return GenerateHTML(data, opts)
	default:
		return "", fmt.Errorf("%w %q: must be one of %s", ErrUnsupportedFormat, format, strings.Join(ValidFormats, ", "))
	}
}

// GenerateSVG renders the scene as a standalone SVG document.
func GenerateSVG(data *GraphData) (string, error) {
	if data == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	if err := compiledTemplate.ExecuteTemplate(&buf, "scene", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GenerateHTML generates a self-contained HTML page embedding the scene.
func GenerateHTML(data *GraphData, opts HTMLOptions) (string, error) {
	if data == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}

	td := templateData{Title: opts.Title, Graph: data, Empty: data.IsEmpty()}

	var buf bytes.Buffer
	if err := compiledTemplate.ExecuteTemplate(&buf, "page", td); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// templateData holds data for the HTML template.
type templateData struct {
	Title string
	Graph *GraphData
	Empty bool
}

// pillWidth sizes the tinted background behind a category label.
func pillWidth(label string) float64 {
	return float64(utf8.RuneCountInString(label))*5.5 + 8
}

const sceneTemplate = `{{define "scene"}}<svg xmlns="http://www.w3.org/2000/svg" width="{{.Size.Width}}" height="{{.Size.Height}}" viewBox="0 0 {{.Size.Width}} {{.Size.Height}}" font-family="-apple-system, BlinkMacSystemFont, Segoe UI, Roboto, Helvetica, Arial, sans-serif">
  <g transform="{{.Transform.SVG}}">
{{- range .Edges}}{{if .Path}}
    <path id="{{.ID}}" d="{{.Path}}" stroke="{{.Color}}" stroke-width="1.5" fill="none" opacity="0.8"/>
{{- end}}{{end}}
{{- range .Nodes}}{{if not (isRoot .Type)}}
    <g id="{{.ID}}" transform="translate({{printf "%.2f" .X}}, {{printf "%.2f" .Y}})"{{if .Answered}} opacity="0.5"{{end}}>
      <circle r="3.5" fill="#FFFFFF" stroke="{{.Color}}" stroke-width="1.5"/>
{{- if isItem .Type}}
      <text x="12" y="4" fill="#6B7280" font-size="10">{{.Label}}</text>
{{- else}}
      <rect x="8" y="-9" width="{{pillWidth .Label}}" height="18" rx="6" ry="6" fill="{{.Color}}" fill-opacity="0.2"/>
      <text x="12" y="4" fill="{{.Color}}" font-size="10" font-weight="600">{{.Label}}</text>
{{- end}}
    </g>
{{- end}}{{end}}
  </g>
</svg>{{end}}`

const htmlTemplate = `{{define "page"}}<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    .map {
      display: flex;
      justify-content: center;
      padding: 16px;
    }
    .map svg {
      background: white;
      border: 1px solid #e0e0e0;
      border-radius: 8px;
    }
    .empty-state {
      text-align: center;
      color: #666;
      margin-top: 20vh;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
  </style>
</head>
<body>
{{- if .Empty}}
  <div class="empty-state">
    <h2>Nothing to map yet</h2>
    <p>Add prayer lists or cards to your journal and run this again.</p>
  </div>
{{- else}}
  <div class="map">
    {{template "scene" .Graph}}
  </div>
{{- end}}
</body>
</html>{{end}}`
