// Package render turns a filter result and the visitor's reviews into the
// directory page. BuildPage is pure; WriteHTML serializes the page.
package render

import (
	"fmt"
	"net/url"
	"strings"

	"daleel/internal/domain"
)

// PlaceholderImage replaces doctor photos that are missing or known broken.
const PlaceholderImage = "https://via.placeholder.com/140?text=صورة+غير+متوفرة"

// EmptyReviewsMessage is shown on a card with no reviews.
const EmptyReviewsMessage = "لا توجد تقييمات بعد. كن أول من يضيف تقييماً!"

// State selects which of the three mutually exclusive result blocks is shown.
type State int

const (
	StateResults State = iota
	StateNoResults
	StateComingSoon
)

func (s State) String() string {
	switch s {
	case StateNoResults:
		return "no-results"
	case StateComingSoon:
		return "coming-soon"
	default:
		return "results"
	}
}

// Notice kinds accepted in the notice query parameter.
const (
	NoticeEmpty   = "empty"
	NoticeInvalid = "invalid"
	NoticeSaved   = "saved"
	NoticeError   = "error"
)

var noticeText = map[string]struct{ level, msg string }{
	NoticeEmpty:   {"warning", "⚠️ الرجاء كتابة تقييمك أولاً"},
	NoticeInvalid: {"warning", "⚠️ التقييم قصير جداً أو يحتوي على محارف غير مسموحة"},
	NoticeSaved:   {"success", "✅ تم إضافة تقييمك بنجاح!"},
	NoticeError:   {"warning", "❌ حدث خطأ. حاول مرة أخرى"},
}

// PageInput is everything BuildPage needs. Search is the sanitized search
// text as the visitor typed it; State.SearchTerm is its normalized form.
type PageInput struct {
	State         domain.FilterState
	Result        domain.FilterResult
	Reviews       map[int64][]domain.ReviewEntry
	TotalReviews  int
	MissingImages map[int64]bool
	Cities        []string
	QuickFilters  []string
	Search        string
	Notice        string
}

type Page struct {
	Title        string
	City         string
	State        State
	Cards        []Card
	DoctorCount  int
	TotalReviews int
	Cities       []Option
	Filters      []FilterLink
	Search       string
	ClearSearch  string // empty when there is nothing to clear
	Specialty    string
	Notice       *Notice
}

type Option struct {
	Value    string
	Selected bool
}

type FilterLink struct {
	Label  string
	Href   string
	Active bool
}

type Notice struct {
	Kind    string
	Level   string // success|warning
	Message string
}

type Card struct {
	ID           int64
	Name         string
	Specialty    string
	ImageURL     string
	WhatsAppURL  string
	ReviewAction string
	ReviewsTitle string
	Reviews      []ReviewView
	EmptyMessage string
}

type ReviewView struct {
	ID   int64
	Date string
	Text string
}

// BuildPage derives the view model. The doctor count reflects the rendered
// cards; the review total is passed through as computed over the whole
// directory.
func BuildPage(in PageInput) Page {
	city := in.State.SelectedCity
	if in.Result.City != "" {
		city = in.Result.City
	}
	specialty := in.State.SpecialtyFilter
	if specialty == "" {
		specialty = domain.SpecialtyAll
	}

	p := Page{
		Title:        "أطباء الثقة في " + city,
		City:         city,
		TotalReviews: in.TotalReviews,
		Search:       in.Search,
		Specialty:    specialty,
	}

	for _, c := range in.Cities {
		p.Cities = append(p.Cities, Option{Value: c, Selected: c == city})
	}
	for _, f := range in.QuickFilters {
		p.Filters = append(p.Filters, FilterLink{
			Label:  filterLabel(f),
			Href:   PageURL(city, in.Search, f, ""),
			Active: f == specialty,
		})
	}
	if in.Search != "" {
		p.ClearSearch = PageURL(city, "", specialty, "")
	}
	if n, ok := noticeText[in.Notice]; ok {
		p.Notice = &Notice{Kind: in.Notice, Level: n.level, Message: n.msg}
	}

	switch {
	case in.Result.ComingSoon:
		p.State = StateComingSoon
		return p
	case len(in.Result.Doctors) == 0:
		p.State = StateNoResults
		return p
	}

	p.State = StateResults
	p.DoctorCount = len(in.Result.Doctors)
	p.Cards = make([]Card, 0, len(in.Result.Doctors))
	for _, d := range in.Result.Doctors {
		p.Cards = append(p.Cards, buildCard(d, in.Reviews[d.ID], in.MissingImages[d.ID]))
	}
	return p
}

func buildCard(d domain.DoctorRecord, reviews []domain.ReviewEntry, missingImage bool) Card {
	c := Card{
		ID:           d.ID,
		Name:         d.Name,
		Specialty:    d.Specialty,
		ImageURL:     d.ImageURL,
		WhatsAppURL:  d.WhatsAppURL(),
		ReviewAction: fmt.Sprintf("/doctors/%d/reviews", d.ID),
		ReviewsTitle: fmt.Sprintf("💬 التقييمات (%d)", len(reviews)),
	}
	if c.ImageURL == "" || missingImage {
		c.ImageURL = PlaceholderImage
	}
	if len(reviews) == 0 {
		c.EmptyMessage = EmptyReviewsMessage
		return c
	}
	c.Reviews = make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		rv := ReviewView{ID: r.ID, Text: r.Text}
		if t, ok := r.CreatedAt(); ok {
			rv.Date = FormatDate(t)
		}
		c.Reviews = append(c.Reviews, rv)
	}
	return c
}

func filterLabel(f string) string {
	if f == domain.SpecialtyAll {
		return "الكل"
	}
	return f
}

// PageURL builds a link back to the directory page keeping the given
// selection. Empty values are omitted, as is the "all" filter.
func PageURL(city, search, specialty, notice string) string {
	q := url.Values{}
	if city != "" {
		q.Set("city", city)
	}
	if search != "" {
		q.Set("q", search)
	}
	if specialty != "" && specialty != domain.SpecialtyAll {
		q.Set("filter", specialty)
	}
	if notice != "" {
		q.Set("notice", notice)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

var arabicDigits = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
)
