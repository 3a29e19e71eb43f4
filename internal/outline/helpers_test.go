package outline

import "fmt"

// span builds a single-span line at the left margin of a page.
func span(text string, size float64, bold bool, page int, y float64) Span {
	return spanAt(text, size, bold, page, 72, y)
}

func spanAt(text string, size float64, bold bool, page int, x, y float64) Span {
	w := float64(len(text)) * size * 0.5
	return Span{
		Text:     text,
		FontName: "Helvetica",
		Size:     size,
		Bold:     bold,
		BBox:     BBox{X0: x, Y0: y, X1: x + w, Y1: y + size},
		Page:     page,
	}
}

// bodySpans returns n body-text lines of the given size spread over pages,
// perPage lines each, starting at y=150 with 20pt spacing.
func bodySpans(n, perPage int, size float64) []Span {
	out := make([]Span, 0, n)
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("This is ordinary body text on line number %d of the report", i)
		out = append(out, span(text, size, false, i/perPage, 150+float64(i%perPage)*20))
	}
	return out
}

func line(text string, size float64, bold bool, page, index int, y float64) Line {
	s := span(text, size, bold, page, y)
	return Line{
		Spans:        []Span{s},
		Text:         text,
		DominantSize: size,
		Bold:         bold,
		BBox:         s.BBox,
		Page:         page,
		Index:        index,
	}
}
