// Package content holds the hand-authored material the site renders: the
// work history, social links, CV download and the smaller page sections.
package content

import (
	"strings"
	"time"
)

// Role is one entry in the work history.
type Role struct {
	Company string    `yaml:"company" validate:"required"`
	Title   string    `yaml:"title" validate:"required"`
	Logo    string    `yaml:"logo" validate:"required"`
	Start   DateField `yaml:"start"`
	End     DateField `yaml:"end"`
}

// RemoteLogo reports whether the logo is served from another origin.
func (r Role) RemoteLogo() bool {
	return strings.HasPrefix(r.Logo, "http://") || strings.HasPrefix(r.Logo, "https://")
}

// Owner identifies whose site this is.
type Owner struct {
	Name     string `yaml:"name" validate:"required"`
	Headline string `yaml:"headline"`
	Location string `yaml:"location"`
}

// ResumePrefix is the only URL prefix the server serves CV documents under.
const ResumePrefix = "/resume/"

// Download is the static CV document offered by the résumé panel. Path is a
// single file directly under ResumePrefix.
type Download struct {
	Path     string `yaml:"path" validate:"required,startswith=/resume/"`
	Filename string `yaml:"filename" validate:"required"`
	Label    string `yaml:"label" validate:"required"`
}

// SocialLink is an outbound profile link.
type SocialLink struct {
	Label string `yaml:"label" validate:"required"`
	Href  string `yaml:"href" validate:"required"`
	Icon  string `yaml:"icon" validate:"required,oneof=github linkedin mail x instagram"`
	// Placeholder marks links whose destination has not been filled in yet.
	Placeholder bool `yaml:"placeholder"`
}

type Tech struct {
	Name     string `yaml:"name" validate:"required"`
	Category string `yaml:"category"`
}

type Photo struct {
	Src string `yaml:"src" validate:"required"`
	Alt string `yaml:"alt"`
}

// Site is the whole authored content document.
type Site struct {
	Owner     Owner        `yaml:"owner"`
	About     []string     `yaml:"about" validate:"required,min=1"`
	Roles     []Role       `yaml:"roles" validate:"required,min=1,dive"`
	Resume    Download     `yaml:"resume"`
	Social    []SocialLink `yaml:"social" validate:"dive"`
	Email     string       `yaml:"email" validate:"required,email"`
	TechStack []Tech       `yaml:"techStack" validate:"dive"`
	Photos    []Photo      `yaml:"photos" validate:"dive"`
}

// RolesAt returns the roles in authored order with every current end date
// resolved against now.
func (s *Site) RolesAt(now time.Time) []Role {
	roles := make([]Role, len(s.Roles))
	for i, r := range s.Roles {
		r.Start = r.Start.Materialize(now)
		r.End = r.End.Materialize(now)
		roles[i] = r
	}
	return roles
}

// File returns the document's name below ResumePrefix.
func (d Download) File() string {
	return strings.TrimPrefix(d.Path, ResumePrefix)
}

// MailTo returns the mailto URI for the contact address.
func (s *Site) MailTo() string {
	return "mailto:" + s.Email
}

// Clock supplies the current time. Rendering never reads the wall clock
// directly so that the "Present" year can be pinned in tests.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time { return time.Now() }

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
