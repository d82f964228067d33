// Package components renders the site's presentational building blocks.
//
// Each component is a named html/template definition fed by a small view
// model from this package. The exported surface is fixed: other parts of the
// site refer to components only by the names returned from Exports.
package components

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"slices"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrUnknownComponent is returned when rendering a name that is not defined.
var ErrUnknownComponent = errors.New("unknown component")

var exports = []string{
	"About",
	"Container",
	"ContainerInner",
	"ContainerOuter",
	"Footer",
	"Header",
	"Logo",
	"Photos",
	"TechStack",
	"ThemeProvider",
}

// Exports returns the names of the components available to the rest of the
// site. Container is exported together with its two layout variants.
func Exports() []string {
	return slices.Clone(exports)
}

// Exported reports whether name is part of the exported surface.
func Exported(name string) bool {
	return slices.Contains(exports, name)
}

// Set is a parsed collection of component templates, optionally joined by
// page templates that compose them.
type Set struct {
	t *template.Template
}

// New parses the component templates. When pages is non-nil the files it
// matches are parsed into the same set, so pages can call any component.
func New(pages fs.FS, patterns ...string) (*Set, error) {
	t, err := template.New("components").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse component templates: %w", err)
	}

	if pages != nil {
		if t, err = t.ParseFS(pages, patterns...); err != nil {
			return nil, fmt.Errorf("failed to parse page templates: %w", err)
		}
	}

	for _, name := range exports {
		if t.Lookup(name) == nil {
			return nil, fmt.Errorf("exported component %q is not defined", name)
		}
	}

	return &Set{t: t}, nil
}

// Must is like New but panics on error.
func Must(s *Set, err error) *Set {
	if err != nil {
		panic(err)
	}
	return s
}

// Template returns the underlying template set, e.g. for gin's HTML renderer.
func (s *Set) Template() *template.Template {
	return s.t
}

// Render writes the named component or page to w.
func (s *Set) Render(w io.Writer, name string, data any) error {
	if s.t.Lookup(name) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	return s.t.ExecuteTemplate(w, name, data)
}

// HTML renders the named component into a fragment that can be slotted into
// a Container.
func (s *Set) HTML(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.Render(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
