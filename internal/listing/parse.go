package listing

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// EpisodeItem is one episode entry lifted out of the listing markup.
type EpisodeItem struct {
	// ID is the raw data-id attribute value; numeric parsing happens later.
	ID string
	// Href is the first anchor target inside the item, empty when absent.
	Href string
}

const episodeItemClass = "ep-item"

// ParseEpisodeItems walks the listing markup and collects every li element
// flagged with the ep-item class, in document order.
func ParseEpisodeItems(markup string) ([]EpisodeItem, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	var items []EpisodeItem
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" && hasClass(n, episodeItemClass) {
			items = append(items, EpisodeItem{
				ID:   attrValue(n, "data-id"),
				Href: firstAnchorHref(n),
			})
			// Episode items do not nest; skip the subtree.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return items, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attrValue(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func firstAnchorHref(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "a" {
		if href := attrValue(n, "href"); href != "" {
			return href
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if href := firstAnchorHref(c); href != "" {
			return href
		}
	}
	return ""
}
