package render

import (
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const pageCSS = `body{font-family:Tahoma,sans-serif;margin:0;background:#f5f7fa;color:#222}
header,main{max-width:1100px;margin:0 auto;padding:16px}
.notice{padding:12px;border-radius:8px;margin:12px 0}.notice-success{background:#e6f7ec}.notice-warning{background:#fff4e0}
.filters a{margin-left:8px}.filters a.active{font-weight:bold}
.doctors-grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(300px,1fr));gap:16px}
.doctor-card{background:#fff;border-radius:12px;padding:16px}
.doc-img{width:140px;height:140px;border-radius:50%;object-fit:cover}
.review-date{font-size:.8rem;color:#888}.rev-empty{text-align:center;padding:20px;color:#888}
.overlay{display:none;position:fixed;inset:0;background:rgba(0,0,0,.5)}.overlay:target{display:block}
.overlay .modal{background:#fff;max-width:560px;margin:10vh auto;padding:24px;border-radius:12px}`

// WriteHTML serializes the page. Every value that can carry visitor or
// directory text is placed in a text node or an attribute, so the
// serializer escapes it.
func WriteHTML(w io.Writer, p Page) error {
	return html.Render(w, document(p))
}

func document(p Page) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(el(atom.Html, attrs("lang", "ar", "dir", "rtl"),
		el(atom.Head, nil,
			el(atom.Meta, attrs("charset", "utf-8")),
			el(atom.Meta, attrs("name", "viewport", "content", "width=device-width, initial-scale=1")),
			el(atom.Title, nil, text(p.Title)),
			el(atom.Style, nil, text(pageCSS)),
		),
		el(atom.Body, nil,
			header(),
			mainContent(p),
			aboutOverlay(),
			helpOverlay(),
		),
	))
	return doc
}

func header() *html.Node {
	return el(atom.Header, nil,
		el(atom.H1, nil, text("🩺 دليل الأطباء")),
		el(atom.Nav, attrs("class", "site-nav"),
			el(atom.A, attrs("href", "#about", "id", "about-trigger"), text("حول الموقع")),
			text(" "),
			el(atom.A, attrs("href", "#help", "id", "help-trigger"), text("المساعدة")),
		),
	)
}

func mainContent(p Page) *html.Node {
	m := el(atom.Main, nil)
	if p.Notice != nil {
		m.AppendChild(el(atom.Div, attrs(
			"class", "notice notice-"+p.Notice.Level,
			"id", "notice",
			"role", "status",
			"data-kind", p.Notice.Kind,
		), text(p.Notice.Message)))
	}
	m.AppendChild(searchForm(p))
	m.AppendChild(filterLinks(p))
	m.AppendChild(el(atom.Div, attrs("class", "stats"),
		text("عدد الأطباء: "),
		el(atom.Span, attrs("id", "total-doctors"), text(strconv.Itoa(p.DoctorCount))),
		text(" · عدد التقييمات: "),
		el(atom.Span, attrs("id", "total-reviews"), text(strconv.Itoa(p.TotalReviews))),
	))
	m.AppendChild(el(atom.H2, attrs("id", "list-title"), text(p.Title)))

	switch p.State {
	case StateComingSoon:
		m.AppendChild(el(atom.Div, attrs("id", "coming-soon", "class", "coming-soon"),
			el(atom.H3, nil, text("🚧 قريباً")),
			el(atom.P, nil,
				text("نعمل على إضافة أطباء محافظة "),
				el(atom.Strong, attrs("id", "selected-province"), text(p.City)),
				text(". تابعونا!"),
			),
		))
	case StateNoResults:
		m.AppendChild(el(atom.Div, attrs("id", "no-results", "class", "no-results"),
			el(atom.P, nil, text("😔 لا توجد نتائج مطابقة لبحثك")),
		))
	default:
		grid := el(atom.Div, attrs("id", "doctors-grid", "class", "doctors-grid"))
		for _, c := range p.Cards {
			grid.AppendChild(card(p, c))
		}
		m.AppendChild(grid)
	}
	return m
}

func searchForm(p Page) *html.Node {
	sel := el(atom.Select, attrs("name", "city", "id", "city-select"))
	for _, c := range p.Cities {
		a := attrs("value", c.Value)
		if c.Selected {
			a = append(a, html.Attribute{Key: "selected"})
		}
		sel.AppendChild(el(atom.Option, a, text(c.Value)))
	}
	f := el(atom.Form, attrs("method", "get", "action", "/", "class", "search-form"),
		sel,
		el(atom.Input, attrs("type", "search", "name", "q", "id", "search-input",
			"value", p.Search, "placeholder", "ابحث باسم الطبيب أو التخصص أو الأعراض...")),
		hidden("filter", p.Specialty),
		el(atom.Button, attrs("type", "submit"), text("بحث")),
	)
	if p.ClearSearch != "" {
		f.AppendChild(el(atom.A, attrs("href", p.ClearSearch, "id", "clear-search"), text("✕ مسح البحث")))
	}
	return f
}

func filterLinks(p Page) *html.Node {
	nav := el(atom.Nav, attrs("class", "filters", "id", "quick-filters"))
	for _, f := range p.Filters {
		cls := "filter-btn"
		if f.Active {
			cls += " active"
		}
		nav.AppendChild(el(atom.A, attrs("href", f.Href, "class", cls), text(f.Label)))
	}
	return nav
}

func card(p Page, c Card) *html.Node {
	list := el(atom.Div, attrs("class", "rev-list"))
	if len(c.Reviews) == 0 {
		list.AppendChild(el(atom.Div, attrs("class", "rev-empty"), text(c.EmptyMessage)))
	}
	for _, r := range c.Reviews {
		list.AppendChild(el(atom.Div, attrs("class", "review-item", "data-id", strconv.FormatInt(r.ID, 10)),
			el(atom.Div, attrs("class", "review-date"), text(r.Date)),
			el(atom.Div, attrs("class", "review-text"), text(r.Text)),
		))
	}

	id := strconv.FormatInt(c.ID, 10)
	return el(atom.Article, attrs("class", "doctor-card", "id", "doctor-"+id),
		el(atom.Img, attrs("src", c.ImageURL, "class", "doc-img", "alt", c.Name, "loading", "lazy")),
		el(atom.H2, nil, text(c.Name)),
		el(atom.P, attrs("class", "spec"), text(c.Specialty)),
		el(atom.A, attrs("href", c.WhatsAppURL, "class", "btn-whatsapp",
			"target", "_blank", "rel", "noopener noreferrer"), text("📱 حجز موعد عبر واتساب")),
		el(atom.Div, attrs("class", "reviews-section"),
			el(atom.H3, nil, text(c.ReviewsTitle)),
			list,
			el(atom.Form, attrs("method", "post", "action", c.ReviewAction, "class", "rev-input-area"),
				el(atom.Input, attrs("type", "text", "name", "text", "id", "review-input-"+id,
					"maxlength", "200", "placeholder", "شارك تجربتك مع الطبيب...")),
				hidden("city", p.City),
				hidden("q", p.Search),
				hidden("filter", p.Specialty),
				el(atom.Button, attrs("type", "submit"), text("نشر")),
			),
		),
	)
}

func aboutOverlay() *html.Node {
	return overlay("about", "حول الموقع",
		"دليل للأطباء الموثوقين في المحافظات العراقية، يساعدك على إيجاد الطبيب المناسب وحجز موعدك عبر واتساب.",
		"التقييمات تُحفظ لك أنت فقط وتظهر في زياراتك القادمة من نفس المتصفح.",
	)
}

func helpOverlay() *html.Node {
	return overlay("help", "المساعدة",
		"اختر المحافظة ثم ابحث باسم الطبيب أو التخصص أو الأعراض.",
		"استخدم أزرار التخصصات لتضييق النتائج.",
		"اضغط زر واتساب لحجز موعد، واكتب تقييمك (٥ إلى ٢٠٠ حرف) ثم اضغط نشر.",
	)
}

// overlay is a section shown while the URL fragment names it.
func overlay(id, title string, paras ...string) *html.Node {
	modal := el(atom.Div, attrs("class", "modal", "role", "dialog", "aria-labelledby", id+"-title"),
		el(atom.A, attrs("href", "#", "class", "close", "aria-label", "إغلاق"), text("✕")),
		el(atom.H2, attrs("id", id+"-title"), text(title)),
	)
	for _, s := range paras {
		modal.AppendChild(el(atom.P, nil, text(s)))
	}
	return el(atom.Section, attrs("id", id, "class", "overlay"), modal)
}

func hidden(name, value string) *html.Node {
	return el(atom.Input, attrs("type", "hidden", "name", name, "value", value))
}

func el(a atom.Atom, at []html.Attribute, kids ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: at}
	for _, k := range kids {
		n.AppendChild(k)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// attrs pairs up key, value arguments.
func attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}
