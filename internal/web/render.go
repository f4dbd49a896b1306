package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var (
	md         = goldmark.New()
	htmlPolicy = newContentHTMLPolicy()
)

func newContentHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// markdown renders content Markdown to HTML and passes the result through
// the content policy before it is marked safe.
func markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(htmlPolicy.Sanitize(buf.String()))
}

// inlineMarkdown is markdown without the wrapping paragraph, for list items
// and short labels.
func inlineMarkdown(src string) template.HTML {
	out := strings.TrimSpace(string(markdown(src)))
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"markdown": markdown,
		"inline":   inlineMarkdown,
	}
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
