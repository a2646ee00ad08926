package lettersmith

import (
	"net/url"
	"strings"
	"testing"
)

func TestValuesWithFallbackPrefersPrimaryName(t *testing.T) {
	form := url.Values{
		"summary": {"from summary"},
		"desc":    {"from desc"},
	}
	got := valuesWithFallback(form, "summary", "desc")
	if len(got) != 1 || got[0] != "from summary" {
		t.Errorf("valuesWithFallback = %v, want [from summary]", got)
	}
}

func TestValuesWithFallbackUsesAliasWhenPrimaryBlank(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"primary absent", url.Values{"desc": {"legacy"}}},
		{"primary empty", url.Values{"summary": {""}, "desc": {"legacy"}}},
		{"primary whitespace", url.Values{"summary": {"  ", "\t"}, "desc": {"legacy"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valuesWithFallback(tt.form, "summary", "desc")
			if len(got) != 1 || got[0] != "legacy" {
				t.Errorf("valuesWithFallback = %v, want [legacy]", got)
			}
		})
	}
}

func TestValuesWithFallbackReturnsPrimaryWhenAllBlank(t *testing.T) {
	form := url.Values{"summary": {"", " "}}
	got := valuesWithFallback(form, "summary", "desc")
	if len(got) != 2 {
		t.Errorf("valuesWithFallback = %v, want the primary blanks back", got)
	}
}

func TestBuildArticlesDropsBlankTitles(t *testing.T) {
	form := url.Values{
		"title":   {"A", "", " "},
		"summary": {"x", "y", "z"},
	}
	articles := BuildArticles(form)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if articles[0].Title != "A" {
		t.Errorf("Title = %q, want %q", articles[0].Title, "A")
	}
}

func TestBuildArticlesPadsShorterLists(t *testing.T) {
	form := url.Values{
		"title":   {"First", "Second"},
		"summary": {"only one"},
	}
	articles := BuildArticles(form)
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[1].Summary != "" {
		t.Errorf("padded summary = %q, want empty", articles[1].Summary)
	}
}

func TestBuildArticlesRowExistsForLongestList(t *testing.T) {
	// A url in position 2 creates a row even though no second title was
	// submitted; the row is then dropped for its empty title.
	form := url.Values{
		"title": {"Only"},
		"url":   {"https://a.example", "https://b.example"},
	}
	articles := BuildArticles(form)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
}

func TestBuildArticlesPreservesOrder(t *testing.T) {
	form := url.Values{"title": {"one", "two", "three"}}
	articles := BuildArticles(form)
	want := []string{"one", "two", "three"}
	if len(articles) != len(want) {
		t.Fatalf("got %d articles, want %d", len(articles), len(want))
	}
	for i, w := range want {
		if string(articles[i].Title) != w {
			t.Errorf("articles[%d].Title = %q, want %q", i, articles[i].Title, w)
		}
	}
}

func TestBuildArticlesUsesLegacyAliases(t *testing.T) {
	form := url.Values{
		"title": {"Hello"},
		"desc":  {"legacy summary"},
		"img":   {"https://img.example/x.png"},
		"link":  {"https://example.com"},
	}
	articles := BuildArticles(form)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	a := articles[0]
	if !strings.Contains(string(a.Summary), "legacy summary") {
		t.Errorf("Summary = %q, want legacy value", a.Summary)
	}
	if a.Image != "https://img.example/x.png" {
		t.Errorf("Image = %q", a.Image)
	}
	if a.URL != "https://example.com" {
		t.Errorf("URL = %q", a.URL)
	}
}

func TestBuildArticlesEscapesTitle(t *testing.T) {
	form := url.Values{
		"title": {"<script>alert(1)</script>"},
	}
	articles := BuildArticles(form)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if strings.Contains(string(articles[0].Title), "<script>") {
		t.Errorf("Title contains raw script tag: %q", articles[0].Title)
	}
	if !strings.Contains(string(articles[0].Title), "&lt;script&gt;") {
		t.Errorf("Title = %q, want escaped script tag", articles[0].Title)
	}
}

func TestBuildArticlesKeepsURLsUnescaped(t *testing.T) {
	// Image and URL stay raw here; the theme templates' attribute context
	// applies the single round of escaping at render time.
	form := url.Values{
		"title": {"Hello"},
		"image": {"https://img.example/x.png?w=300&h=200"},
		"url":   {"https://example.com/?a=1&b=2"},
	}
	articles := BuildArticles(form)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if articles[0].Image != "https://img.example/x.png?w=300&h=200" {
		t.Errorf("Image = %q, want the raw query string", articles[0].Image)
	}
	if articles[0].URL != "https://example.com/?a=1&b=2" {
		t.Errorf("URL = %q, want the raw query string", articles[0].URL)
	}
}

func TestBuildArticlesRendersSummaryMarkup(t *testing.T) {
	form := url.Values{
		"title":   {"Hello"},
		"summary": {"**world**"},
		"image":   {""},
		"url":     {""},
	}
	articles := BuildArticles(form)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	a := articles[0]
	if a.Summary != "<p><strong>world</strong></p>" {
		t.Errorf("Summary = %q, want %q", a.Summary, "<p><strong>world</strong></p>")
	}
	if a.Image != "" || a.URL != "" {
		t.Errorf("Image/URL = %q/%q, want empty", a.Image, a.URL)
	}
}

func TestBuildArticlesTrimsFields(t *testing.T) {
	form := url.Values{
		"title": {"  padded  "},
		"url":   {"  https://example.com  "},
	}
	articles := BuildArticles(form)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if articles[0].Title != "padded" {
		t.Errorf("Title = %q, want trimmed", articles[0].Title)
	}
	if articles[0].URL != "https://example.com" {
		t.Errorf("URL = %q, want trimmed", articles[0].URL)
	}
}

func TestBuildArticlesEmptyForm(t *testing.T) {
	if got := BuildArticles(url.Values{}); len(got) != 0 {
		t.Errorf("BuildArticles(empty) = %v, want none", got)
	}
}
