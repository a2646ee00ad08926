// Package views holds the templ components for the studio pages: the
// dashboard, the article editor, and the error pages. Newsletter output
// itself is rendered from the per-theme template artifacts, not from here.
package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func component(render func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return render(w)
	})
}

// page wraps body in the shared document shell.
func page(w io.Writer, title string, body func(w io.Writer) error) error {
	if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body{font-family:system-ui,-apple-system,sans-serif;margin:0;background:#f4f4f0;color:#222}
header{background:#1a2b4a;color:#fff;padding:1rem 2rem}
header a{color:#fff;text-decoration:none;font-weight:600}
header nav a{margin-left:1.5rem;font-weight:400;opacity:.85}
main{max-width:960px;margin:2rem auto;padding:0 1rem}
.card{background:#fff;border:1px solid #ddd;border-radius:6px;padding:1.25rem;margin-bottom:1rem}
button,.btn{background:#1a2b4a;color:#fff;border:0;border-radius:4px;padding:.5rem 1rem;cursor:pointer;font-size:.95rem}
button.secondary{background:#666}
label{display:block;font-size:.85rem;font-weight:600;margin:.6rem 0 .2rem}
input,textarea,select{width:100%%;box-sizing:border-box;padding:.45rem;border:1px solid #ccc;border-radius:4px;font:inherit}
iframe{width:100%%;height:540px;border:1px solid #ccc;border-radius:6px;background:#fff}
.row{display:flex;gap:1rem}.row>*{flex:1}
</style>
</head>
<body>
<header><a href="/">Newsletter Studio</a><nav style="display:inline"><a href="/editor">Editor</a></nav></header>
<main>
`, html.EscapeString(title)); err != nil {
		return err
	}
	if err := body(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
	return err
}

// Dashboard lists the configured brands and themes and links into the editor.
func Dashboard(brands []BrandOption, themes []string) templ.Component {
	return component(func(w io.Writer) error {
		return page(w, "Newsletter Studio", func(w io.Writer) error {
			if _, err := io.WriteString(w, "<h1>Dashboard</h1>\n<p>Build a weekly newsletter from article snippets, preview it live, and export it as an HTML file ready for your sending platform.</p>\n"); err != nil {
				return err
			}
			for _, b := range brands {
				if _, err := fmt.Fprintf(w,
					"<div class=\"card\"><h2>%s</h2><p><a href=\"%s\">%s</a></p></div>\n",
					html.EscapeString(b.Name), html.EscapeString(b.SiteURL), html.EscapeString(b.SiteURL)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w,
				"<div class=\"card\"><h2>Themes</h2><p>%s</p></div>\n<p><a class=\"btn\" href=\"/editor\">Open the editor</a></p>\n",
				html.EscapeString(strings.Join(themes, ", "))); err != nil {
				return err
			}
			return nil
		})
	})
}

// Editor renders the article form with live preview. selBrand and selTheme
// preselect the visitor's last choices.
func Editor(brands []BrandOption, themes []string, selBrand, selTheme string) templ.Component {
	return component(func(w io.Writer) error {
		return page(w, "Editor — Newsletter Studio", func(w io.Writer) error {
			if _, err := io.WriteString(w, "<h1>Editor</h1>\n<form id=\"nl\" method=\"post\" action=\"/generate\">\n<div class=\"row\">\n<div><label for=\"brand\">Brand</label><select id=\"brand\" name=\"brand\">\n"); err != nil {
				return err
			}
			for _, b := range brands {
				if _, err := fmt.Fprintf(w, "<option value=\"%s\"%s>%s</option>\n",
					html.EscapeString(b.ID), selected(b.ID == selBrand), html.EscapeString(b.Name)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</select></div>\n<div><label for=\"theme\">Theme</label><select id=\"theme\" name=\"theme\">\n"); err != nil {
				return err
			}
			for _, t := range themes {
				if _, err := fmt.Fprintf(w, "<option value=\"%s\"%s>%s</option>\n",
					html.EscapeString(t), selected(t == selTheme), html.EscapeString(t)); err != nil {
					return err
				}
			}
			_, err := io.WriteString(w, `</select></div>
</div>
<div id="articles">
<div class="card article">
<label>Title</label><input name="title">
<label>Summary (markup: **bold**, *italic*, [link](url), - lists)</label><textarea name="summary" rows="3"></textarea>
<div class="row">
<div><label>Image URL</label><input name="image"></div>
<div><label>Link URL</label><input name="url"></div>
</div>
</div>
</div>
<p>
<button type="button" id="add" class="secondary">Add article</button>
<button type="submit" formaction="/export">Download HTML</button>
<button type="submit">Generate</button>
</p>
</form>
<h2>Preview</h2>
<iframe id="preview" title="Newsletter preview"></iframe>
<script>
const form = document.getElementById('nl');
const frame = document.getElementById('preview');
let timer = null;

async function refresh() {
  const res = await fetch('/preview', {method: 'POST', body: new FormData(form)});
  frame.srcdoc = await res.text();
}

form.addEventListener('input', () => {
  clearTimeout(timer);
  timer = setTimeout(refresh, 300);
});

document.getElementById('add').addEventListener('click', () => {
  const first = document.querySelector('.article');
  const copy = first.cloneNode(true);
  copy.querySelectorAll('input,textarea').forEach(el => el.value = '');
  document.getElementById('articles').appendChild(copy);
});

refresh();
</script>
`)
			return err
		})
	})
}

// NotFound is the styled 404 page.
func NotFound() templ.Component {
	return statusPage("Page not found", "The page you are looking for does not exist.")
}

// ServerError is the styled 500 page.
func ServerError() templ.Component {
	return statusPage("Something went wrong", "An unexpected error occurred. Please try again.")
}

func statusPage(heading, detail string) templ.Component {
	return component(func(w io.Writer) error {
		return page(w, heading, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "<h1>%s</h1>\n<p>%s</p>\n<p><a href=\"/\">Back to the dashboard</a></p>\n",
				html.EscapeString(heading), html.EscapeString(detail))
			return err
		})
	})
}

func selected(is bool) string {
	if is {
		return " selected"
	}
	return ""
}
