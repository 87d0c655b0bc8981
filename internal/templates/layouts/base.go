// Package layouts holds the shared page shell every handler renders into.
package layouts

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

type navLink struct {
	href  string
	label string
}

var clubNav = []navLink{
	{href: "/club", label: "Players"},
	{href: "/club/schedule", label: "Scoresheet"},
	{href: "/club/stats", label: "Stats"},
}

// Page wraps content in the full HTML document: head, htmx script, and the
// club navigation bar.
func Page(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead(title)); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func pageHead(title string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s | Matchbook</title>
<script src="/static/js/htmx.min.js" defer></script>
<link rel="stylesheet" href="/static/css/app.css"/>
</head>
<body class="bg-gray-50 text-gray-900">
<nav class="border-b bg-white px-4 py-3">
<div class="mx-auto flex max-w-7xl items-center gap-6">
<a href="/" class="font-semibold">Matchbook</a>
%s
<form method="post" action="/logout" class="ml-auto"><button type="submit" class="text-sm text-gray-500">Sign out</button></form>
</div>
</nav>
<main class="p-4 md:p-10 mx-auto max-w-7xl">`,
		html.EscapeString(title), navLinksHTML())
}

func navLinksHTML() string {
	links := ""
	for _, link := range clubNav {
		links += fmt.Sprintf(`<a href="%s" class="text-sm text-gray-600 hover:text-gray-900">%s</a>`, link.href, html.EscapeString(link.label))
	}
	return links
}
