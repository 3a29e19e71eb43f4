package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Word documents have no fixed layout, so
// paragraphs are flowed onto letter-sized pages with their run styling.
type DOCXParser struct{}

// titleStyleSize is the size Word's built-in Title style renders at.
const titleStyleSize = 28.0

func (p *DOCXParser) Parse(r io.Reader, filename string) (result *outline.Document, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	defer func() {
		if v := recover(); v != nil {
			result = nil
			err = fmt.Errorf("decode docx: %v", v)
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	flow := newFlowLayout()
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		flow.block(docxParagraphRuns(para))
	}
	return flow.document("", filename), nil
}

// docxParagraphRuns converts the runs of a paragraph, using the paragraph
// style for size and weight when a run sets neither.
func docxParagraphRuns(para *docx.Paragraph) []run {
	size, bold := bodySize, false
	switch level := docxHeadingLevel(para); {
	case level > 0:
		size, bold = headingSize(level), true
	case docxIsTitle(para):
		size, bold = titleStyleSize, true
	}

	var runs []run
	for _, child := range para.Children {
		r, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, rc := range r.Children {
			switch t := rc.(type) {
			case *docx.Text:
				buf.WriteString(t.Text)
			case *docx.Tab:
				buf.WriteByte(' ')
			}
		}
		if buf.Len() == 0 {
			continue
		}
		out := run{text: buf.String(), size: size, bold: bold}
		if rp := r.RunProperties; rp != nil {
			if rp.Size != nil {
				// Sizes are stored in half-points.
				if hp, err := strconv.ParseFloat(rp.Size.Val, 64); err == nil && hp > 0 {
					out.size = hp / 2
				}
			}
			if rp.Bold != nil {
				out.bold = true
			}
			if rp.Italic != nil {
				out.italic = true
			}
			if rp.Fonts != nil {
				out.font = rp.Fonts.ASCII
			}
		}
		runs = append(runs, out)
	}
	return runs
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

func docxIsTitle(para *docx.Paragraph) bool {
	return strings.EqualFold(docxStyle(para), "Title")
}

func docxHeadingLevel(para *docx.Paragraph) int {
	return styleHeadingLevel(docxStyle(para))
}

// styleHeadingLevel reads "Heading1" or "heading 1" style names.
func styleHeadingLevel(name string) int {
	style := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	level, err := strconv.Atoi(strings.TrimPrefix(style, "heading"))
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}
