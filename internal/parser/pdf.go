package parser

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser reads glyph runs with their font, size and position.
type PDFParser struct{}

// Ascent and descent as fractions of the font size, used to turn a
// baseline into a box.
const (
	ascent  = 0.8
	descent = 0.2
)

func (p *PDFParser) Parse(r io.Reader, filename string) (doc *outline.Document, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	// The reader panics on some malformed content streams.
	defer func() {
		if v := recover(); v != nil {
			doc = nil
			err = fmt.Errorf("decode pdf: %v", v)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	n := reader.NumPage()
	doc = &outline.Document{
		Metadata: outline.Metadata{
			Title:     pdfTitle(reader),
			PageCount: n,
			Filename:  filename,
			Pages:     make([]outline.PageDim, n),
		},
	}
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		w, h := mediaBox(page)
		doc.Metadata.Pages[i-1] = outline.PageDim{Width: w, Height: h}
		if page.V.IsNull() {
			continue
		}
		doc.Spans = append(doc.Spans, glyphSpans(page.Content().Text, i-1, h)...)
	}
	return doc, nil
}

func pdfTitle(r *pdflib.Reader) string {
	return strings.TrimSpace(r.Trailer().Key("Info").Key("Title").Text())
}

// mediaBox returns the page size, walking up the page tree for an
// inherited box and defaulting to US Letter.
func mediaBox(page pdflib.Page) (float64, float64) {
	v := page.V
	for i := 0; i < 10 && !v.IsNull(); i++ {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			w := math.Abs(box.Index(2).Float64() - box.Index(0).Float64())
			h := math.Abs(box.Index(3).Float64() - box.Index(1).Float64())
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return pageWidth, pageHeight
}

// glyphSpans joins consecutive glyphs that share a font, size and baseline
// into spans. PDF y grows upward; spans use top-down coordinates.
func glyphSpans(texts []pdflib.Text, page int, height float64) []outline.Span {
	var (
		spans []outline.Span
		cur   *pdflib.Text
		buf   strings.Builder
		x1    float64
	)
	flush := func() {
		if cur == nil {
			return
		}
		if s := buf.String(); strings.TrimSpace(s) != "" {
			spans = append(spans, newPDFSpan(*cur, s, x1, page, height))
		}
		cur = nil
		buf.Reset()
	}

	for i := range texts {
		t := texts[i]
		if t.S == "" {
			continue
		}
		if cur != nil {
			gap := t.X - x1
			sameRun := t.Font == cur.Font &&
				t.FontSize == cur.FontSize &&
				math.Abs(t.Y-cur.Y) < 0.5 &&
				gap > -0.5*t.FontSize && gap < 3*t.FontSize
			if !sameRun {
				flush()
			} else if gap > 0.15*t.FontSize && !strings.HasSuffix(buf.String(), " ") && t.S != " " {
				buf.WriteByte(' ')
			}
		}
		if cur == nil {
			cur = &texts[i]
		}
		buf.WriteString(t.S)
		x1 = t.X + t.W
	}
	flush()
	return spans
}

func newPDFSpan(first pdflib.Text, text string, x1 float64, page int, height float64) outline.Span {
	size := first.FontSize
	font := baseFont(first.Font)
	return outline.Span{
		Text:     text,
		FontName: font,
		Size:     size,
		Bold:     isBoldFont(font),
		Italic:   isItalicFont(font),
		BBox: outline.BBox{
			X0: first.X,
			Y0: height - first.Y - size*ascent,
			X1: x1,
			Y1: height - first.Y + size*descent,
		},
		Page: page,
	}
}

// baseFont strips the six-letter subset tag, as in "ABCDEF+Times-Bold".
func baseFont(name string) string {
	if i := strings.IndexByte(name, '+'); i == 6 {
		return name[i+1:]
	}
	return name
}

func isBoldFont(name string) bool {
	n := strings.ToLower(name)
	for _, w := range []string{"bold", "black", "heavy", "semibold", "demi"} {
		if strings.Contains(n, w) {
			return true
		}
	}
	return false
}

func isItalicFont(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "italic") || strings.Contains(n, "oblique")
}
