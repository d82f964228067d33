package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/spf13/cobra"

	"github.com/spenserschwartz/portfolio/internal/content"
)

var servePort string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Spenser Schwartz's portfolio site",
	Long:  "Serves the portfolio site, or renders it to static files with the build command.",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	}
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadSite(cfg Config) (*content.Site, error) {
	if cfg.ContentPath == "" {
		return content.Default(), nil
	}
	return content.LoadFile(cfg.ContentPath)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	if servePort != "" {
		cfg.Port = servePort
	}

	site, err := loadSite(cfg)
	if err != nil {
		return err
	}

	set, err := newTemplateSet()
	if err != nil {
		return err
	}

	srv := &server{
		cfg:        cfg,
		site:       site,
		set:        set,
		clock:      content.SystemClock,
		adminToken: generateToken(),
	}

	if cfg.DatabasePath != "" {
		db, err := openDB(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()

		salt := cfg.HashSalt
		if salt == "" {
			salt = generateToken()
		}
		srv.analytics = newAnalytics(db, salt, content.SystemClock)
		go srv.analytics.cleanupOldVisitorData()
		log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	}

	log.Printf("Listening on :%s", cfg.Port)
	return srv.routes().Run(":" + cfg.Port)
}
