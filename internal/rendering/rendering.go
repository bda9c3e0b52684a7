// Package rendering renders the HTML pages of the site from embedded templates.
package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/jonathan/studentjobs/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and other assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // the directory is embedded at compile time
	}
	return sub
}

// Page names accepted by Render.
const (
	PageHome       = "home"
	PageJobs       = "jobs"
	PageJob        = "job"
	PageCategories = "categories"
	PageEmployers  = "employers"
	PageThankYou   = "thankyou"
	PageBlog       = "blog"
	PagePost       = "post"
	PageStatic     = "static"
	PageNotFound   = "notfound"
)

// shared templates parsed into every page
var sharedFiles = []string{"templates/layout.html", "templates/partials.html"}

// Page is the root value every template is executed with.
type Page struct {
	Site        types.Site
	Title       string
	Description string
	Path        string // canonical path, e.g. "/jobs"
	Lang        string // html lang attribute; defaults to the site language
	JSONLD      []template.JS
	NoIndex     bool
	Data        any
}

// Canonical returns the absolute URL of the page.
func (p Page) Canonical() string {
	return p.Site.URL(p.Path)
}

// HTMLLang returns the document language.
func (p Page) HTMLLang() string {
	if p.Lang != "" {
		return p.Lang
	}
	if lang := p.Site.Language(); lang != "" {
		return lang
	}
	return "en"
}

// Renderer holds the parsed template set. It is safe for concurrent use.
type Renderer struct {
	pages map[string]*template.Template
	now   func() time.Time
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"categoryLabel": func(c types.Category) string {
		return c.Label()
	},
	"employmentLabel": func(e types.Employment) string {
		return e.Label()
	},
}

// New parses every page template. Each page is parsed together with the
// shared layout so pages can override its blocks independently.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template), now: time.Now}

	base, err := template.New("layout").Funcs(funcs).Funcs(template.FuncMap{
		"year": func() int { return r.now().Year() },
	}).ParseFS(templateFS, sharedFiles...)
	if err != nil {
		return nil, &TemplateError{Page: "layout", Message: "failed to parse shared templates", Cause: err}
	}

	for _, name := range []string{
		PageHome, PageJobs, PageJob, PageCategories, PageEmployers,
		PageThankYou, PageBlog, PagePost, PageStatic, PageNotFound,
	} {
		clone, err := base.Clone()
		if err != nil {
			return nil, &TemplateError{Page: name, Message: "failed to clone layout", Cause: err}
		}
		tmpl, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, &TemplateError{Page: name, Message: "failed to parse template", Cause: err}
		}
		r.pages[name] = tmpl
	}

	return r, nil
}

// Render executes the named page and writes it to w. Nothing is written when
// execution fails.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return &TemplateError{Page: name, Message: "unknown page"}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return &TemplateError{Page: name, Message: "failed to execute template", Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write page", Cause: err}
	}
	return nil
}
