package main

import (
	"embed"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spenserschwartz/portfolio/internal/components"
	"github.com/spenserschwartz/portfolio/internal/content"
)

//go:embed templates/*.html
var pageFS embed.FS

func newTemplateSet() (*components.Set, error) {
	return components.New(pageFS, "templates/*.html")
}

type server struct {
	cfg        Config
	site       *content.Site
	set        *components.Set
	analytics  *Analytics
	clock      content.Clock
	adminToken string
}

// PrivacyView feeds privacy.html.
type PrivacyView struct {
	Title  string
	Header components.HeaderView
	Body   components.ContainerView
	Footer components.FooterView
}

func (s *server) privacyPage() (*PrivacyView, error) {
	body, err := s.set.HTML("privacyBody", PrivacyNotice)
	if err != nil {
		return nil, err
	}
	return &PrivacyView{
		Title:  "Privacy Policy - " + s.site.Owner.Name,
		Header: components.NewHeaderView(s.site, "/privacy"),
		Body:   components.ContainerView{Class: "mt-16 sm:mt-32", Content: body},
		Footer: components.NewFooterView(s.site, s.clock()),
	}, nil
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(s.set.Template())

	if s.analytics != nil {
		r.Use(s.analytics.trackingMiddleware())
	}

	r.Static("/images", s.cfg.ImagesDir)
	r.Static("/static", s.cfg.StaticDir)
	r.StaticFile("/favicon.ico", filepath.Join(s.cfg.StaticDir, "favicon.ico"))

	r.GET("/", func(c *gin.Context) {
		page, err := s.set.Page(s.site, s.clock())
		if err != nil {
			s.renderError(c, err)
			return
		}
		c.HTML(http.StatusOK, "index.html", page)
	})

	// HTMX fragment with just the résumé panel
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "Resume", components.NewResumeView(s.site, s.clock()))
	})

	r.GET(content.ResumePrefix+":file", s.handleResumeDownload)

	r.GET("/privacy", func(c *gin.Context) {
		page, err := s.privacyPage()
		if err != nil {
			s.renderError(c, err)
			return
		}
		c.HTML(http.StatusOK, "privacy.html", page)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.setupAdminRoutes(r)
	return r
}

// handleResumeDownload serves the CV as an attachment under its suggested
// filename. Only the document named in the content is reachable.
func (s *server) handleResumeDownload(c *gin.Context) {
	file := c.Param("file")
	if file != s.site.Resume.File() || strings.ContainsAny(file, `/\`) {
		c.String(http.StatusNotFound, "Not found")
		return
	}

	path := filepath.Join(s.cfg.ResumeDir, file)
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Error reading resume %s: %v", path, err)
		}
		c.String(http.StatusNotFound, "Not found")
		return
	}

	if s.analytics != nil && c.GetHeader("DNT") != "1" {
		if err := s.analytics.RecordDownload(file, c.ClientIP()); err != nil {
			log.Printf("Error recording download: %v", err)
		}
	}

	c.FileAttachment(path, s.site.Resume.Filename)
}

func (s *server) renderError(c *gin.Context, err error) {
	log.Printf("Error rendering %s: %v", c.Request.URL.Path, err)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"error": "Sorry, this page could not be rendered.",
	})
}
