package parser

import (
	"unicode/utf8"

	"github.com/dgallion1/outliner/internal/outline"
)

// Geometry for formats that carry no layout of their own: US Letter with
// one-inch side margins. Text stays clear of the running header and footer
// bands at the top and bottom of the page.
const (
	pageWidth   = 612.0
	pageHeight  = 792.0
	pageMargin  = 72.0
	textTop     = 96.0
	textBottom  = pageHeight - textTop
	lineSpacing = 1.2
	blockGap    = 0.5 // extra space after a block, as a fraction of its size
	glyphWidth  = 0.5 // average glyph advance, as a fraction of font size

	bodySize = 12.0
)

// headingSizes maps heading levels 1..6 to the sizes a browser would use
// for a 12pt body.
var headingSizes = [...]float64{24, 18, 15.6, 13.3, 12, 10.7}

func headingSize(level int) float64 {
	if level < 1 || level > len(headingSizes) {
		return bodySize
	}
	return headingSizes[level-1]
}

// run is a piece of text with uniform style inside a block.
type run struct {
	text   string
	size   float64
	bold   bool
	italic bool
	font   string
}

// flowLayout stacks blocks top to bottom on fixed-size pages, one visual
// line per block.
type flowLayout struct {
	page  int
	y     float64
	spans []outline.Span
}

func newFlowLayout() *flowLayout {
	return &flowLayout{y: textTop}
}

// block places runs side by side on the next line.
func (f *flowLayout) block(runs []run) {
	height := 0.0
	for _, r := range runs {
		height = max(height, r.size)
	}
	if height == 0 {
		return
	}
	if f.y+height*lineSpacing > textBottom && f.y > textTop {
		f.page++
		f.y = textTop
	}

	x := pageMargin
	placed := false
	for _, r := range runs {
		if r.text == "" {
			continue
		}
		w := float64(utf8.RuneCountInString(r.text)) * r.size * glyphWidth
		// Align baselines: smaller runs sit at the bottom of the line.
		top := f.y + (height - r.size)
		f.spans = append(f.spans, outline.Span{
			Text:     r.text,
			FontName: r.font,
			Size:     r.size,
			Bold:     r.bold,
			Italic:   r.italic,
			BBox:     outline.BBox{X0: x, Y0: top, X1: x + w, Y1: top + r.size},
			Page:     f.page,
		})
		x += w
		placed = true
	}
	if placed {
		f.y += height*lineSpacing + height*blockGap
	}
}

// document wraps the placed spans with page metadata.
func (f *flowLayout) document(title, filename string) *outline.Document {
	pages := 0
	if len(f.spans) > 0 {
		pages = f.page + 1
	}
	dims := make([]outline.PageDim, pages)
	for i := range dims {
		dims[i] = outline.PageDim{Width: pageWidth, Height: pageHeight}
	}
	return &outline.Document{
		Spans: f.spans,
		Metadata: outline.Metadata{
			Title:     title,
			PageCount: pages,
			Filename:  filename,
			Pages:     dims,
		},
	}
}
