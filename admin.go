// admin.go - privacy-conscious visit tracking and the admin dashboard
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spenserschwartz/portfolio/internal/content"
)

// Visits older than this are purged.
const retention = 365 * 24 * time.Hour

type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type DownloadStat struct {
	File  string `json:"file"`
	Count int64  `json:"count"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalDownloads   int64           `json:"total_downloads"`
	Downloads        []DownloadStat  `json:"downloads"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// Analytics records page visits and CV downloads without storing raw IPs.
type Analytics struct {
	db   *sql.DB
	salt string
	now  content.Clock
}

func newAnalytics(db *sql.DB, salt string, now content.Clock) *Analytics {
	return &Analytics{db: db, salt: salt, now: now}
}

func generateToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate token:", err)
	}
	return hex.EncodeToString(bytes)
}

// hashIP is stable per IP for the lifetime of the salt.
func (a *Analytics) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *Analytics) RecordVisit(ip, userAgent, path string) error {
	_, err := a.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, ts)
		VALUES (?, ?, ?, ?)
	`, a.hashIP(ip), userAgent, path, a.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

func (a *Analytics) RecordDownload(file, ip string) error {
	_, err := a.db.Exec(`
		INSERT INTO downloads (file, hashed_ip, ts)
		VALUES (?, ?, ?)
	`, file, a.hashIP(ip), a.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

// Cleanup removes visits older than the retention window.
func (a *Analytics) Cleanup() (int64, error) {
	cutoff := a.now().Add(-retention).Unix()
	result, err := a.db.Exec(`DELETE FROM visitors WHERE ts < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up visitors: %w", err)
	}
	return result.RowsAffected()
}

func (a *Analytics) cleanupOldVisitorData() {
	rows, err := a.Cleanup()
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if rows > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", rows)
	}
}

func skipTracking(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/admin", "/favicon", "/privacy", "/healthz", "/resume/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// trackingMiddleware records page visits in the background. Static assets,
// admin pages and requests carrying DNT are skipped.
func (a *Analytics) trackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipTracking(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			if err := a.RecordVisit(ip, ua, path); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		}()
		c.Next()
	}
}

func (a *Analytics) Stats() (*AdminStats, error) {
	stats := &AdminStats{}
	now := a.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counts := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{"SELECT COUNT(*) FROM visitors", nil, &stats.TotalVisitors},
		{"SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil, &stats.UniqueVisitors},
		{"SELECT COUNT(*) FROM visitors WHERE ts >= ?", []any{startOfDay.Unix()}, &stats.VisitorsToday},
		{"SELECT COUNT(*) FROM visitors WHERE ts >= ?", []any{now.Add(-7 * 24 * time.Hour).Unix()}, &stats.VisitorsThisWeek},
		{"SELECT COUNT(*) FROM downloads", nil, &stats.TotalDownloads},
	}
	for _, q := range counts {
		if err := a.db.QueryRow(q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("failed to load stats: %w", err)
		}
	}

	rows, err := a.db.Query(`
		SELECT file, COUNT(*) AS n
		FROM downloads
		GROUP BY file
		ORDER BY n DESC, file
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load downloads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d DownloadStat
		if err := rows.Scan(&d.File, &d.Count); err != nil {
			return nil, err
		}
		stats.Downloads = append(stats.Downloads, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.RecentVisitors, err = a.recentVisitors(50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (a *Analytics) recentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := a.db.Query(`
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), ts
		FROM visitors
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load visitors: %w", err)
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, err
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// adminAuthMiddleware checks the session cookie set at login.
func (s *server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *server) checkCredentials(username, password string) bool {
	if s.cfg.AdminPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	return userOK && passOK
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	if s.analytics == nil {
		return
	}
	if s.cfg.AdminPassword == "" {
		log.Println("WARNING: ADMIN_PASSWORD is not set; admin login is disabled")
	}

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !s.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			log.Printf("Failed admin login attempt from %s", s.analytics.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		c.SetCookie("admin_token", s.adminToken, 3600*24, "/admin", "", false, true)
		log.Printf("Admin login successful from %s", s.analytics.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.analytics.Stats()
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.analytics.recentVisitors(200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.analytics.Stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		go s.analytics.cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.analytics.Stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})
}
