package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_PlainString(t *testing.T) {
	for _, s := range []string{"2021", "Jan 2020", ""} {
		label, dateTime := Plain(s).Resolve()
		assert.Equal(t, s, label)
		assert.Equal(t, s, dateTime)
	}
}

func TestResolve_Structured(t *testing.T) {
	label, dateTime := At("Present", "2026").Resolve()
	assert.Equal(t, "Present", label)
	assert.Equal(t, "2026", dateTime)
	assert.True(t, At("a", "b").Structured())
	assert.False(t, Plain("a").Structured())
}

func TestMaterialize_CurrentUsesClockYear(t *testing.T) {
	now := time.Date(2031, time.March, 4, 0, 0, 0, 0, time.UTC)

	d := Current("Present").Materialize(now)
	assert.Equal(t, "Present", d.Label())
	assert.Equal(t, "2031", d.DateTime())
	assert.False(t, d.IsCurrent())

	plain := Plain("2022")
	assert.Equal(t, plain, plain.Materialize(now))
}

func TestDefault_AuthoredOrder(t *testing.T) {
	site := Default()
	now := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)

	roles := site.RolesAt(now)
	require.Len(t, roles, 3)
	assert.Equal(t, "TravelPerfect", roles[0].Company)
	assert.Equal(t, "Axio", roles[1].Company)
	assert.Equal(t, "Mural", roles[2].Company)

	label, dateTime := roles[0].End.Resolve()
	assert.Equal(t, "Present", label)
	assert.Equal(t, "2027", dateTime)

	start, end := roles[1].Start.Label(), roles[1].End.Label()
	assert.Equal(t, "2022", start)
	assert.Equal(t, "2023", end)
}

func TestDefault_RolesAtDoesNotMutate(t *testing.T) {
	site := Default()
	_ = site.RolesAt(time.Now())
	assert.True(t, site.Roles[0].End.IsCurrent())
}

func TestDefault_Links(t *testing.T) {
	site := Default()
	assert.Equal(t, "/resume/Schwartz, Spenser - Resume.pdf", site.Resume.Path)
	assert.Equal(t, "Schwartz, Spenser - Resume.pdf", site.Resume.Filename)
	assert.Equal(t, "mailto:spenser.m.schwartz@gmail.com", site.MailTo())
	require.Len(t, site.Social, 2)
	for _, l := range site.Social {
		assert.Equal(t, "#", l.Href)
		assert.True(t, l.Placeholder)
	}
}

func TestRemoteLogo(t *testing.T) {
	roles := Default().Roles
	assert.False(t, roles[0].RemoteLogo())
	assert.True(t, roles[1].RemoteLogo())
	assert.True(t, roles[2].RemoteLogo())
}

const minimalSite = `
owner:
  name: Test
about: ["hello"]
roles:
  - company: Acme
    title: Engineer
    logo: /logo.png
    start: "2020"
    end: %s
resume:
  path: /resume/cv.pdf
  filename: cv.pdf
  label: Download CV
email: test@example.com
`

func loadWithEnd(t *testing.T, end string) (*Site, error) {
	t.Helper()
	return Load(strings.NewReader(strings.Replace(minimalSite, "%s", end, 1)))
}

func TestLoad_StructuredDate(t *testing.T) {
	site, err := loadWithEnd(t, `{label: "Spring '21", dateTime: "2021-04"}`)
	require.NoError(t, err)

	label, dateTime := site.Roles[0].End.Resolve()
	assert.Equal(t, "Spring '21", label)
	assert.Equal(t, "2021-04", dateTime)
}

func TestLoad_MissingDateTimeRejected(t *testing.T) {
	_, err := loadWithEnd(t, `{label: Present}`)
	require.Error(t, err)
	var contentErr *ContentError
	assert.ErrorAs(t, err, &contentErr)
	assert.Contains(t, err.Error(), "invalid content")
}

func TestLoad_MissingLabelRejected(t *testing.T) {
	_, err := loadWithEnd(t, `{dateTime: "2021"}`)
	assert.Error(t, err)
}

func TestLoad_EmptyPlainDateRejected(t *testing.T) {
	_, err := loadWithEnd(t, `""`)
	assert.Error(t, err)
}

func TestLoad_SequenceDateRejected(t *testing.T) {
	_, err := loadWithEnd(t, `["2021"]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse content")
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	_, err := Load(strings.NewReader("owner:\n  name: x\n  nickname: y\n"))
	assert.Error(t, err)
}

func TestLoad_BadEmailRejected(t *testing.T) {
	doc := strings.Replace(minimalSite, "%s", `"2021"`, 1)
	doc = strings.Replace(doc, "test@example.com", "not-an-address", 1)
	_, err := Load(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestLoad_ResumePathMustBeServable(t *testing.T) {
	base := strings.Replace(minimalSite, "%s", `"2021"`, 1)

	site, err := Load(strings.NewReader(base))
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", site.Resume.File())

	for _, path := range []string{"/files/cv.pdf", "/resume/", "/resume/docs/cv.pdf", `/resume/a\b.pdf`, "/resume/..", "cv.pdf"} {
		doc := strings.Replace(base, "path: /resume/cv.pdf", "path: "+path, 1)
		_, err := Load(strings.NewReader(doc))
		require.Error(t, err, path)
		assert.Contains(t, err.Error(), "invalid content", path)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("/nonexistent/site.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open content file")
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, at, FixedClock(at)())
}
