package export

import (
	"bytes"
	"html/template"
	"time"
)

var memoTemplate = template.Must(template.New("memo").Funcs(template.FuncMap{
	"formatDate": func(t time.Time, layout string) string {
		return t.Format(layout)
	},
}).Parse(memoTemplateHTML))

// RenderMemoHTML renders the memo template with provided data.
func RenderMemoHTML(memo Memo) (string, error) {
	data := struct {
		Memo
		ContentHTML template.HTML
	}{
		Memo:        memo,
		ContentHTML: contentToHTML(memo.Content),
	}

	var buf bytes.Buffer
	if err := memoTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const memoTemplateHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 800px; margin: 2rem auto; color: #222; }
    h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; }
    .meta { color: #666; font-size: 0.9em; margin-bottom: 2rem; }
    .content p { margin: 0 0 1em; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">{{.OwnerUsername}} | {{formatDate .UpdatedAt "Jan 2, 2006"}}</div>
  <div class="content">{{.ContentHTML}}</div>
</body>
</html>`
