package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spenserschwartz/portfolio/internal/components"
	"github.com/spenserschwartz/portfolio/internal/content"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site to static HTML files",
	Long:  "Render the home page, the privacy page and the work fragment into a directory for static hosting.",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "Output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	site, err := loadSite(cfg)
	if err != nil {
		return err
	}
	set, err := newTemplateSet()
	if err != nil {
		return err
	}

	srv := &server{cfg: cfg, site: site, set: set, clock: content.SystemClock}
	return srv.build(cmd.Context(), buildOut)
}

type staticPage struct {
	file string
	name string
	data func() (any, error)
}

// build writes every static page into dir, rendering them concurrently.
func (s *server) build(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	now := s.clock()
	pages := []staticPage{
		{"index.html", "index.html", func() (any, error) { return s.set.Page(s.site, now) }},
		{"privacy.html", "privacy.html", func() (any, error) { return s.privacyPage() }},
		{"work-content.html", "Resume", func() (any, error) { return components.NewResumeView(s.site, now), nil }},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range pages {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := p.data()
			if err != nil {
				return fmt.Errorf("failed to build %s: %w", p.file, err)
			}

			var buf bytes.Buffer
			if err := s.set.Render(&buf, p.name, data); err != nil {
				return fmt.Errorf("failed to render %s: %w", p.file, err)
			}

			path := filepath.Join(dir, p.file)
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			log.Printf("Wrote %s", path)
			return nil
		})
	}
	return g.Wait()
}
