package news

import (
	"strings"

	"golang.org/x/net/html"
)

// stripHTML extracts visible text from an HTML fragment. NewsAPI article
// fields often carry markup from the source site.
func stripHTML(raw string) string {
	if !strings.ContainsRune(raw, '<') {
		return normalizeSpace(raw)
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return normalizeSpace(raw)
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isOneOf(n.Data, "script", "style", "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return normalizeSpace(strings.Join(parts, " "))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes cuts s to at most limit runes without splitting a
// multi-byte character.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
