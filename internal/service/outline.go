package service

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// OutlineEntry is one jump target in a post's table of contents.
type OutlineEntry struct {
	ID    string
	Text  string
	Level int
}

// BuildOutline collects the h2/h3/h4 headings of a post body and gives
// each one a slug-derived anchor id. It returns the body with the ids
// injected and the matching entries in document order. A body without
// headings is returned unchanged.
func BuildOutline(body string) (string, []OutlineEntry) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(body), ctx)
	if err != nil {
		return body, nil
	}

	var entries []OutlineEntry
	for _, node := range nodes {
		collectHeadings(node, &entries)
	}
	if len(entries) == 0 {
		return body, nil
	}

	var sb strings.Builder
	for _, node := range nodes {
		if err := html.Render(&sb, node); err != nil {
			return body, nil
		}
	}
	return sb.String(), entries
}

var headingLevels = map[string]int{"h2": 2, "h3": 3, "h4": 4}

func collectHeadings(node *html.Node, entries *[]OutlineEntry) {
	if node.Type == html.ElementNode {
		if level, ok := headingLevels[node.Data]; ok {
			text := strings.TrimSpace(nodeText(node))
			id := headingID(text, len(*entries))
			setAttr(node, "id", id)
			*entries = append(*entries, OutlineEntry{ID: id, Text: text, Level: level})
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectHeadings(child, entries)
	}
}

// headingID builds "toc-<slug>-<index>"; the slug fragment is capped at
// 50 characters and the index keeps repeated headings distinct.
func headingID(text string, index int) string {
	slug := DeriveSlug(text)
	if len(slug) > 50 {
		slug = slug[:50]
	}
	if slug == "" {
		return fmt.Sprintf("toc-%d", index)
	}
	return fmt.Sprintf("toc-%s-%d", slug, index)
}

func nodeText(node *html.Node) string {
	if node.Type == html.TextNode {
		return node.Data
	}
	var sb strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}

func setAttr(node *html.Node, key, value string) {
	for i, attr := range node.Attr {
		if attr.Key == key {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: value})
}
