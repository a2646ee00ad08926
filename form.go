package lettersmith

import (
	"html"
	"html/template"
	"net/url"
	"strings"

	"github.com/vayuveg/lettersmith/markup"
)

// Article is one normalized content block of a newsletter. Title is
// escaped plain text and Summary is the sanitized fragment produced by the
// markup renderer; both embed verbatim. Image and URL are trimmed raw
// values: template.URL exempts them from link rewriting so query strings
// survive intact, while the templates' attribute context still applies the
// one round of escaping. Articles live for a single request and are never
// persisted.
type Article struct {
	Title   template.HTML
	Summary template.HTML
	Image   template.URL
	URL     template.URL
}

// valuesWithFallback returns the submitted values under the first of names
// that has at least one non-blank value. When every candidate is absent or
// entirely blank it returns whatever exists under the preferred (first)
// name, so callers always get a defined result. Legacy editor forms still
// post desc/img/link instead of summary/image/url.
func valuesWithFallback(form url.Values, names ...string) []string {
	for _, name := range names {
		vals := form[name]
		if anyNonBlank(vals) {
			return vals
		}
	}
	if len(names) == 0 {
		return nil
	}
	return form[names[0]]
}

func anyNonBlank(vals []string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// BuildArticles normalizes the submitted form into an ordered article list.
// The four field lists are paired positionally up to the longest list, with
// missing positions treated as empty. Rows whose trimmed title is empty are
// dropped whole; surviving rows get an escaped title and the summary is
// converted from markup to HTML. Input order is preserved and nothing is
// deduplicated.
func BuildArticles(form url.Values) []Article {
	titles := valuesWithFallback(form, "title")
	summaries := valuesWithFallback(form, "summary", "desc")
	images := valuesWithFallback(form, "image", "img")
	links := valuesWithFallback(form, "url", "link")

	n := max(len(titles), len(summaries), len(images), len(links))

	articles := make([]Article, 0, n)
	for i := 0; i < n; i++ {
		title := strings.TrimSpace(at(titles, i))
		if title == "" {
			continue
		}
		articles = append(articles, Article{
			Title:   template.HTML(html.EscapeString(title)),
			Summary: template.HTML(markup.ToHTML(strings.TrimSpace(at(summaries, i)))),
			Image:   template.URL(strings.TrimSpace(at(images, i))),
			URL:     template.URL(strings.TrimSpace(at(links, i))),
		})
	}
	return articles
}

// at reads vals[i], padding reads past the end with "".
func at(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return ""
}
