package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

// ContentError reports a content document that could not be loaded.
type ContentError struct {
	Message string
	Cause   error
}

func (e *ContentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ContentError) Unwrap() error {
	return e.Cause
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func newValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterStructValidation(validateDateField, DateField{})
		validate.RegisterStructValidation(validateDownload, Download{})
	})
	return validate
}

// validateDateField rejects empty plain dates and structured dates missing
// either half of the pair.
func validateDateField(sl validator.StructLevel) {
	d := sl.Current().Interface().(DateField)
	if !d.structured {
		if d.text == "" {
			sl.ReportError(d.text, "text", "text", "required", "")
		}
		return
	}
	if d.label == "" {
		sl.ReportError(d.label, "label", "label", "required", "")
	}
	if d.dateTime == "" && !d.current {
		sl.ReportError(d.dateTime, "dateTime", "dateTime", "required_without", "current")
	}
}

// validateDownload keeps the CV path to one file segment so the download
// route can serve it.
func validateDownload(sl validator.StructLevel) {
	d := sl.Current().Interface().(Download)
	file := d.File()
	if !strings.HasPrefix(d.Path, ResumePrefix) || file == "" || strings.ContainsAny(file, `/\`) || file == "." || file == ".." {
		sl.ReportError(d.Path, "path", "Path", "resumefile", "")
	}
}

// Load parses and validates a content document.
func Load(r io.Reader) (*Site, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var site Site
	if err := dec.Decode(&site); err != nil {
		return nil, &ContentError{Message: "failed to parse content", Cause: err}
	}

	if err := newValidator().Struct(&site); err != nil {
		return nil, &ContentError{Message: "invalid content", Cause: err}
	}

	return &site, nil
}

// LoadFile loads a content document from disk.
func LoadFile(path string) (*Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ContentError{Message: fmt.Sprintf("failed to open content file %s", path), Cause: err}
	}
	defer f.Close()
	return Load(f)
}

// Default returns the content embedded in the binary. It panics if the
// embedded document is invalid, which the package tests rule out.
func Default() *Site {
	site, err := Load(bytes.NewReader(defaultSite))
	if err != nil {
		panic(err)
	}
	return site
}
