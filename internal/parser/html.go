package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Heading tags get browser default sizes,
// block elements become body lines, and <title> becomes metadata.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*outline.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	flow := newFlowLayout()
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				flow.block(inlineRuns(n, headingSize(level), true))
				return
			}

			// Skip non-content elements.
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "head":
				return
			case "p", "li", "td", "th", "blockquote", "dt", "dd", "caption", "figcaption":
				flow.block(inlineRuns(n, bodySize, false))
				return
			case "pre":
				for _, l := range strings.Split(textContent(n), "\n") {
					flow.block([]run{{text: l, size: bodySize, font: "monospace"}})
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return flow.document(findTitle(doc), filename), nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// inlineRuns flattens an element's text into runs, tracking <b>, <strong>,
// <i> and <em>. Runs of equal style are coalesced.
func inlineRuns(n *html.Node, size float64, bold bool) []run {
	var runs []run
	var visit func(*html.Node, bool, bool)
	visit = func(n *html.Node, bold, italic bool) {
		switch n.Type {
		case html.TextNode:
			text := strings.Join(strings.Fields(n.Data), " ")
			if text == "" {
				return
			}
			// Keep the word boundary that whitespace-only edges imply.
			if strings.TrimLeft(n.Data, " \t\r\n") != n.Data {
				text = " " + text
			}
			if strings.TrimRight(n.Data, " \t\r\n") != n.Data {
				text += " "
			}
			if k := len(runs) - 1; k >= 0 && runs[k].bold == bold && runs[k].italic == italic {
				runs[k].text += text
				return
			}
			runs = append(runs, run{text: text, size: size, bold: bold, italic: italic})
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "b", "strong":
				bold = true
			case "i", "em":
				italic = true
			case "br":
				if k := len(runs) - 1; k >= 0 {
					runs[k].text += " "
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c, bold, italic)
		}
	}
	visit(n, bold, false)
	return runs
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
