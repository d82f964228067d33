package components

import (
	"html/template"
	"slices"
	"strings"
	"time"

	"github.com/spenserschwartz/portfolio/internal/content"
)

const secondaryButton = "bg-zinc-50 font-medium text-zinc-900 hover:bg-zinc-100 active:bg-zinc-100 active:text-zinc-900/60 dark:bg-zinc-800/50 dark:text-zinc-300 dark:hover:bg-zinc-800 dark:hover:text-zinc-50 dark:active:bg-zinc-800/50 dark:active:text-zinc-50/70"

const primaryButton = "bg-zinc-800 font-semibold text-zinc-100 hover:bg-zinc-700 active:bg-zinc-800 active:text-zinc-100/70 dark:bg-zinc-700 dark:hover:bg-zinc-600 dark:active:bg-zinc-700 dark:active:text-zinc-100/70"

type IconView struct {
	Name  string
	Class string
}

// ImageView feeds the Image primitive. Unoptimized images are emitted as-is
// without lazy loading hints.
type ImageView struct {
	Src         string
	Alt         string
	Class       string
	Unoptimized bool
}

type ButtonView struct {
	Variant string
	Class   string
	Label   string
	Icon    *IconView
}

// VariantClass returns the colour classes for the button's variant.
func (b ButtonView) VariantClass() string {
	if b.Variant == "secondary" {
		return secondaryButton
	}
	return primaryButton
}

// RoleView is one rendered work-history entry.
type RoleView struct {
	Key           int
	Company       string
	Title         string
	Logo          ImageView
	StartLabel    string
	StartDateTime string
	EndLabel      string
	EndDateTime   string
	AriaLabel     string
}

// DateRangeLabel is the accessible label for a start/end pair.
func DateRangeLabel(start, end string) string {
	return start + " until " + end
}

// NewRoleView resolves a role's dates. The role's end date must already be
// materialised against the render clock.
func NewRoleView(key int, r content.Role) RoleView {
	startLabel, startDate := r.Start.Resolve()
	endLabel, endDate := r.End.Resolve()

	return RoleView{
		Key:     key,
		Company: r.Company,
		Title:   r.Title,
		Logo: ImageView{
			Src:         r.Logo,
			Alt:         "",
			Class:       "absolute inset-0 h-full w-full rounded-full object-cover",
			Unoptimized: r.RemoteLogo(),
		},
		StartLabel:    startLabel,
		StartDateTime: startDate,
		EndLabel:      endLabel,
		EndDateTime:   endDate,
		AriaLabel:     DateRangeLabel(startLabel, endLabel),
	}
}

type DownloadView struct {
	Href   string
	Button ButtonView
}

type SocialLinkView struct {
	Href        string
	Label       string
	Icon        IconView
	Class       string
	Placeholder bool
}

type LogoView struct {
	Name      string
	Initials  string
	Href      string
	SizeClass string
}

type SocialView struct {
	Links []SocialLinkView
	Email SocialLinkView
	Logo  LogoView
}

// ResumeView feeds the Resume panel.
type ResumeView struct {
	Heading     string
	HeadingIcon IconView
	Roles       []RoleView
	Download    DownloadView
	Social      SocialView
}

const socialIconClass = "h-6 w-6 flex-none fill-zinc-500 transition group-hover:fill-teal-500"

// NewSocialView builds the social links block: profile links, then the
// contact address set apart by a top border, then the logo.
func NewSocialView(site *content.Site) SocialView {
	links := make([]SocialLinkView, 0, len(site.Social))
	for _, l := range site.Social {
		links = append(links, SocialLinkView{
			Href:        l.Href,
			Label:       l.Label,
			Icon:        IconView{Name: l.Icon, Class: socialIconClass},
			Class:       "mt-4",
			Placeholder: l.Placeholder,
		})
	}

	return SocialView{
		Links: links,
		Email: SocialLinkView{
			Href:  site.MailTo(),
			Label: site.Email,
			Icon:  IconView{Name: "mail", Class: socialIconClass},
			Class: "mt-8 border-t border-zinc-100 pt-8 dark:border-zinc-700/40",
		},
		Logo: NewLogoView(site.Owner.Name, "h-10 w-10 text-sm"),
	}
}

// NewResumeView builds the résumé panel, resolving current dates against now.
func NewResumeView(site *content.Site, now time.Time) ResumeView {
	roles := site.RolesAt(now)
	views := make([]RoleView, len(roles))
	for i, r := range roles {
		views[i] = NewRoleView(i, r)
	}

	return ResumeView{
		Heading:     "Work",
		HeadingIcon: IconView{Name: "briefcase", Class: "h-6 w-6 flex-none"},
		Roles:       views,
		Download: DownloadView{
			Href: site.Resume.Path,
			Button: ButtonView{
				Variant: "secondary",
				Class:   "group mt-6 w-full",
				Label:   site.Resume.Label,
				Icon: &IconView{
					Name:  "arrow-down",
					Class: "h-4 w-4 stroke-zinc-400 transition group-active:stroke-zinc-600 dark:group-hover:stroke-zinc-50 dark:group-active:stroke-zinc-50",
				},
			},
		},
		Social: NewSocialView(site),
	}
}

// NewLogoView builds the monogram logo linking home.
func NewLogoView(name, sizeClass string) LogoView {
	return LogoView{
		Name:      name,
		Initials:  initials(name),
		Href:      "/",
		SizeClass: sizeClass,
	}
}

func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

type NavItem struct {
	Label  string
	Href   string
	Active bool
}

type HeaderView struct {
	Logo LogoView
	Nav  []NavItem
}

type FooterView struct {
	Name string
	Year int
	Nav  []NavItem
}

type AboutView struct {
	Name       string
	Headline   string
	Paragraphs []string
}

type PhotoView struct {
	Image    ImageView
	Rotation string
}

type PhotosView struct {
	Photos []PhotoView
}

var rotations = []string{"rotate-2", "-rotate-2", "rotate-2", "rotate-2", "-rotate-2"}

// NewPhotosView alternates a slight tilt across the photo strip.
func NewPhotosView(photos []content.Photo) PhotosView {
	views := make([]PhotoView, len(photos))
	for i, p := range photos {
		views[i] = PhotoView{
			Image: ImageView{
				Src:   p.Src,
				Alt:   p.Alt,
				Class: "absolute inset-0 h-full w-full object-cover",
			},
			Rotation: rotations[i%len(rotations)],
		}
	}
	return PhotosView{Photos: views}
}

type TechGroup struct {
	Category string
	Items    []string
}

type TechStackView struct {
	Groups []TechGroup
}

// NewTechStackView groups technologies by category in order of first
// appearance. Uncategorised entries fall under "Other".
func NewTechStackView(stack []content.Tech) TechStackView {
	var groups []TechGroup
	index := make(map[string]int)
	for _, t := range stack {
		category := t.Category
		if category == "" {
			category = "Other"
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, TechGroup{Category: category})
		}
		groups[i].Items = append(groups[i].Items, t.Name)
	}
	return TechStackView{Groups: groups}
}

// ContainerView wraps already-rendered markup in the page's width container.
type ContainerView struct {
	Class   string
	Content template.HTML
}

var navigation = []NavItem{
	{Label: "About", Href: "/"},
	{Label: "Work", Href: "/#work"},
	{Label: "Privacy", Href: "/privacy"},
}

func nav(active string) []NavItem {
	items := slices.Clone(navigation)
	for i := range items {
		items[i].Active = items[i].Href == active
	}
	return items
}

// PageView is everything index.html needs.
type PageView struct {
	Title       string
	Description string
	Header      HeaderView
	Intro       ContainerView
	Photos      PhotosView
	Body        ContainerView
	Footer      FooterView
}

// NewHeaderView builds the page header with the given path marked active.
func NewHeaderView(site *content.Site, active string) HeaderView {
	return HeaderView{
		Logo: NewLogoView(site.Owner.Name, "h-10 w-10 text-sm"),
		Nav:  nav(active),
	}
}

// NewFooterView stamps the copyright line with now's year.
func NewFooterView(site *content.Site, now time.Time) FooterView {
	return FooterView{Name: site.Owner.Name, Year: now.Year(), Nav: nav("")}
}

// Page composes the home page. Sections rendered into containers are
// executed here, so any template error surfaces before the response starts.
func (s *Set) Page(site *content.Site, now time.Time) (*PageView, error) {
	about, err := s.HTML("About", AboutView{
		Name:       site.Owner.Name,
		Headline:   site.Owner.Headline,
		Paragraphs: site.About,
	})
	if err != nil {
		return nil, err
	}

	techStack, err := s.HTML("TechStack", NewTechStackView(site.TechStack))
	if err != nil {
		return nil, err
	}

	resume, err := s.HTML("Resume", NewResumeView(site, now))
	if err != nil {
		return nil, err
	}

	grid, err := s.HTML("homeGrid", struct {
		TechStack template.HTML
		Resume    template.HTML
	}{techStack, resume})
	if err != nil {
		return nil, err
	}

	return &PageView{
		Title:       site.Owner.Name,
		Description: site.Owner.Headline,
		Header:      NewHeaderView(site, "/"),
		Intro:       ContainerView{Class: "mt-9", Content: about},
		Photos:      NewPhotosView(site.Photos),
		Body:        ContainerView{Class: "mt-24 md:mt-28", Content: grid},
		Footer:      NewFooterView(site, now),
	}, nil
}
