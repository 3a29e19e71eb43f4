package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. ATX and setext
// headings take the same sizes as their HTML counterparts.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*outline.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	flow := newFlowLayout()
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch node := n.(type) {
		case *ast.Heading:
			flow.block(markdownRuns(node, src, headingSize(node.Level), true))
			return
		case *ast.Paragraph, *ast.TextBlock:
			flow.block(markdownRuns(node, src, bodySize, false))
			return
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				flow.block([]run{{
					text: strings.TrimRight(string(seg.Value(src)), "\r\n"),
					size: bodySize,
					font: "monospace",
				}})
			}
			return
		case *ast.HTMLBlock, *ast.ThematicBreak:
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(doc)
	return flow.document("", filename), nil
}

// markdownRuns collects the inline text of a block node. Strong emphasis
// (level 2) marks runs bold and single emphasis marks them italic.
func markdownRuns(n ast.Node, src []byte, size float64, bold bool) []run {
	var runs []run
	add := func(s string, bold, italic bool) {
		if s == "" {
			return
		}
		if k := len(runs) - 1; k >= 0 && runs[k].bold == bold && runs[k].italic == italic {
			runs[k].text += s
			return
		}
		runs = append(runs, run{text: s, size: size, bold: bold, italic: italic})
	}

	var visit func(ast.Node, bool, bool)
	visit = func(n ast.Node, bold, italic bool) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Text:
				s := string(node.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					s += " "
				}
				add(s, bold, italic)
			case *ast.String:
				add(string(node.Value), bold, italic)
			case *ast.Emphasis:
				visit(node, bold || node.Level >= 2, italic || node.Level == 1)
			default:
				visit(node, bold, italic)
			}
		}
	}
	visit(n, bold, false)
	return runs
}
