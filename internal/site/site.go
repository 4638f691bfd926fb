// Package site renders the shared header and footer and mounts them into a
// page document.
package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/net/html"

	"github.com/vulchevd/web.io/internal/dom"
	"github.com/vulchevd/web.io/internal/i18n"
	"github.com/vulchevd/web.io/internal/nav"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Person is a named contact.
type Person struct {
	Name  string
	Phone string
}

// Company holds the details printed in the footer.
type Company struct {
	Name  string
	Email string
	CEO   Person
	GM    Person
}

// DefaultCompany is the site owner.
var DefaultCompany = Company{
	Name:  "Briliant Properties",
	Email: "office@briliant.bg",
	CEO:   Person{Name: "Румен Стефанов", Phone: "+35988555055"},
	GM:    Person{Name: "Станислав Стефанов", Phone: "+3598889622277"},
}

// Options configures a Renderer.
type Options struct {
	Bundle   *i18n.Bundle
	Resolver *nav.Resolver
	Company  Company
	// Now supplies the copyright year. Defaults to time.Now.
	Now func() time.Time
}

// Renderer builds header and footer fragments. It is safe for concurrent use.
type Renderer struct {
	bundle   *i18n.Bundle
	resolver *nav.Resolver
	company  Company
	now      func() time.Time
	tmpl     *template.Template
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	if opts.Bundle == nil {
		return nil, errors.New("site: translation bundle is required")
	}
	if opts.Resolver == nil {
		opts.Resolver = nav.NewResolver(nav.Options{})
	}
	if opts.Company.Name == "" {
		opts.Company = DefaultCompany
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("site: parse templates: %w", err)
	}
	return &Renderer{
		bundle:   opts.Bundle,
		resolver: opts.Resolver,
		company:  opts.Company,
		now:      opts.Now,
		tmpl:     tmpl,
	}, nil
}

// Resolver returns the path resolver used for links.
func (r *Renderer) Resolver() *nav.Resolver { return r.resolver }

type link struct {
	Href   string
	Label  string
	Active bool
}

type flag struct {
	Lang   string
	Href   string
	Flag   string
	Alt    string
	Active bool
}

type headerData struct {
	Brand    string
	HomeHref string
	Nav      []link
	Switcher []flag
}

type footerData struct {
	Labels  i18n.Labels
	Company Company
	Quick   []link
	Legal   []link
	Year    int
}

func (r *Renderer) links(items []nav.Item, loc nav.Location) []link {
	current := loc.Lang()
	built := nav.Build(items, loc, r.resolver)
	out := make([]link, 0, len(built))
	for _, it := range built {
		out = append(out, link{
			Href:   it.Href,
			Label:  r.bundle.T(current, it.LabelKey),
			Active: it.Active,
		})
	}
	return out
}

// RenderHeader builds the header for loc: logo, main navigation with the
// current page marked active, and the language switcher.
func (r *Renderer) RenderHeader(loc nav.Location) (*html.Node, error) {
	current := loc.Lang()
	names := r.bundle.Labels(current).Language
	data := headerData{
		Brand:    r.company.Name,
		HomeHref: r.resolver.PageURL(current, string(nav.Home), loc),
		Nav:      r.links(nav.Main, loc),
	}
	for _, e := range nav.Switcher(loc, r.resolver) {
		data.Switcher = append(data.Switcher, flag{
			Lang:   string(e.Lang),
			Href:   e.Href,
			Flag:   e.Flag,
			Alt:    names[string(e.Lang)],
			Active: e.Active,
		})
	}
	return r.fragment("header", data)
}

// RenderFooter builds the footer for loc: contact details, quick links,
// legal links and the copyright line.
func (r *Renderer) RenderFooter(loc nav.Location) (*html.Node, error) {
	data := footerData{
		Labels:  r.bundle.Labels(loc.Lang()),
		Company: r.company,
		Quick:   r.links(nav.Main, loc),
		Legal:   r.links(nav.Legal, loc),
		Year:    r.now().Year(),
	}
	return r.fragment("footer", data)
}

func (r *Renderer) fragment(name string, data any) (*html.Node, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("site: render %s: %w", name, err)
	}
	nodes, err := dom.ParseFragment(buf.String())
	if err != nil {
		return nil, err
	}
	n := dom.FirstElement(nodes)
	if n == nil {
		return nil, fmt.Errorf("site: %s rendered no element", name)
	}
	return n, nil
}
