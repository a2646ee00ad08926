// Package markup converts the lightweight markup dialect accepted in
// article summaries into sanitized HTML fragments suitable for embedding
// in a newsletter body.
//
// Input text is HTML-escaped before any formatting is applied, so raw
// markup in a summary can never reach the output unescaped. The dialect is
// deliberately small and email-safe: paragraphs, three heading levels,
// bullet and ordered lists, blockquotes, horizontal rules, bold, italic,
// inline code, and links with scheme-checked URLs.
package markup

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	reStrong      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reStrongUnder = regexp.MustCompile(`__(.+?)__`)
	reEm          = regexp.MustCompile(`\*([^*]+)\*`)
	reEmUnder     = regexp.MustCompile(`_([^_]+)_`)
	reCode        = regexp.MustCompile("`([^`]+)`")
	reLink        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reOrdered     = regexp.MustCompile(`^\d+\.\s+`)
)

// block is the kind of container currently open while walking lines.
type block int

const (
	blockNone block = iota
	blockPara
	blockBullets
	blockOrdered
	blockQuote
)

var blockClose = map[block]string{
	blockPara:    "</p>",
	blockBullets: "</ul>",
	blockOrdered: "</ol>",
	blockQuote:   "</blockquote>",
}

// ToHTML renders src as an HTML fragment. Empty or whitespace-only input
// produces an empty string, not an empty paragraph.
func ToHTML(src string) string {
	var b strings.Builder
	cur := blockNone

	closeBlock := func() {
		if cur != blockNone {
			b.WriteString(blockClose[cur])
			cur = blockNone
		}
	}
	ensure := func(bl block, open string) {
		if cur != bl {
			closeBlock()
			b.WriteString(open)
			cur = bl
		}
	}

	for _, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		switch {
		case line == "":
			closeBlock()
		case strings.HasPrefix(line, "---"):
			closeBlock()
			b.WriteString("<hr/>")
		case strings.HasPrefix(line, "### "):
			closeBlock()
			b.WriteString("<h3>" + Inline(line[4:]) + "</h3>")
		case strings.HasPrefix(line, "## "):
			closeBlock()
			b.WriteString("<h2>" + Inline(line[3:]) + "</h2>")
		case strings.HasPrefix(line, "# "):
			closeBlock()
			b.WriteString("<h1>" + Inline(line[2:]) + "</h1>")
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			ensure(blockBullets, "<ul>")
			b.WriteString("<li>" + Inline(line[2:]) + "</li>")
		case reOrdered.MatchString(line):
			ensure(blockOrdered, "<ol>")
			b.WriteString("<li>" + Inline(reOrdered.ReplaceAllString(line, "")) + "</li>")
		case strings.HasPrefix(line, "> "):
			if cur == blockQuote {
				b.WriteString(" ")
			}
			ensure(blockQuote, "<blockquote>")
			b.WriteString(Inline(line[2:]))
		default:
			// Consecutive plain lines join into one paragraph.
			if cur == blockPara {
				b.WriteString(" ")
			}
			ensure(blockPara, "<p>")
			b.WriteString(Inline(line))
		}
	}
	closeBlock()
	return b.String()
}

// Inline escapes s and applies inline formatting: inline code, links,
// bold, and italic, in that order. Code spans are swapped for placeholders
// first so the other patterns never rewrite their contents, and bold and
// italic are applied only outside tags so link URLs stay intact.
func Inline(s string) string {
	out := html.EscapeString(strings.TrimSpace(s))

	var codeSpans []string
	out = reCode.ReplaceAllStringFunc(out, func(m string) string {
		body := reCode.FindStringSubmatch(m)[1]
		codeSpans = append(codeSpans, "<code>"+body+"</code>")
		return "\x00" + strconv.Itoa(len(codeSpans)-1) + "\x00"
	})

	out = reLink.ReplaceAllStringFunc(out, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `">` + match[1] + `</a>`
	})

	out = outsideTags(out, func(seg string) string {
		seg = reStrong.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reStrongUnder.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reEm.ReplaceAllString(seg, "<em>$1</em>")
		seg = reEmUnder.ReplaceAllString(seg, "<em>$1</em>")
		return seg
	})

	for i, span := range codeSpans {
		out = strings.Replace(out, "\x00"+strconv.Itoa(i)+"\x00", span, 1)
	}
	return out
}

// outsideTags applies fn to the text between HTML tags, leaving the tags
// themselves untouched.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for {
		lt := strings.Index(s, "<")
		if lt < 0 {
			b.WriteString(fn(s))
			return b.String()
		}
		b.WriteString(fn(s[:lt]))
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			b.WriteString(s[lt:])
			return b.String()
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
}

// SafeURL returns raw escaped for use in an href attribute, or "" when the
// URL is unusable. Relative paths and fragments pass through; absolute
// URLs must carry an http, https, mailto, or tel scheme.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
