package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time { return c.t }

func newTestAnalytics(t *testing.T, clock *stepClock) *Analytics {
	t.Helper()
	db, err := openDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newAnalytics(db, "salt", clock.now)
}

func TestHashIP(t *testing.T) {
	a := &Analytics{salt: "salt"}
	h := a.hashIP("198.51.100.7")

	assert.Len(t, h, 16)
	assert.Equal(t, h, a.hashIP("198.51.100.7"))
	assert.NotEqual(t, h, a.hashIP("198.51.100.8"))

	other := &Analytics{salt: "pepper"}
	assert.NotEqual(t, h, other.hashIP("198.51.100.7"))
}

func TestSkipTracking(t *testing.T) {
	for _, path := range []string{"/static/app.css", "/images/a.png", "/admin/dashboard", "/privacy", "/favicon.ico", "/resume/cv.pdf", "/healthz"} {
		assert.True(t, skipTracking(path), path)
	}
	for _, path := range []string{"/", "/work-content"} {
		assert.False(t, skipTracking(path), path)
	}
}

func TestStats(t *testing.T) {
	clock := &stepClock{t: testNow}
	a := newTestAnalytics(t, clock)

	clock.t = testNow.Add(-3 * 24 * time.Hour)
	require.NoError(t, a.RecordVisit("10.0.0.1", "ua", "/"))
	clock.t = testNow.Add(-30 * 24 * time.Hour)
	require.NoError(t, a.RecordVisit("10.0.0.2", "ua", "/"))
	clock.t = testNow.Add(-time.Hour)
	require.NoError(t, a.RecordVisit("10.0.0.1", "ua", "/work-content"))
	require.NoError(t, a.RecordDownload("cv.pdf", "10.0.0.1"))
	require.NoError(t, a.RecordDownload("cv.pdf", "10.0.0.2"))
	require.NoError(t, a.RecordDownload("old.pdf", "10.0.0.2"))

	clock.t = testNow
	stats, err := a.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalVisitors)
	assert.Equal(t, int64(2), stats.UniqueVisitors)
	assert.Equal(t, int64(1), stats.VisitorsToday)
	assert.Equal(t, int64(2), stats.VisitorsThisWeek)
	assert.Equal(t, int64(3), stats.TotalDownloads)
	assert.Equal(t, []DownloadStat{{File: "cv.pdf", Count: 2}, {File: "old.pdf", Count: 1}}, stats.Downloads)

	require.Len(t, stats.RecentVisitors, 3)
	assert.Equal(t, "/work-content", stats.RecentVisitors[0].Path)
	assert.Equal(t, testNow.Add(-time.Hour).Unix(), stats.RecentVisitors[0].Timestamp.Unix())
}

func TestCleanup(t *testing.T) {
	clock := &stepClock{t: testNow.Add(-400 * 24 * time.Hour)}
	a := newTestAnalytics(t, clock)
	require.NoError(t, a.RecordVisit("10.0.0.1", "ua", "/"))

	clock.t = testNow
	require.NoError(t, a.RecordVisit("10.0.0.1", "ua", "/"))

	removed, err := a.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	stats, err := a.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVisitors)
}

func TestGenerateToken(t *testing.T) {
	a, b := generateToken(), generateToken()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
