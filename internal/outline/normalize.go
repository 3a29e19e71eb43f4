package outline

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// wordGap is the horizontal gap, as a fraction of font size, above which two
// spans on one line are treated as separate words.
const wordGap = 0.15

// Normalize validates spans and groups them into lines per page. Lines on a
// page are ordered top to bottom, then left to right.
func Normalize(spans []Span, pageCount int, cfg Config) (map[int][]Line, error) {
	cfg = cfg.withDefaults()

	type indexed struct {
		span Span
		idx  int
	}
	byPage := make(map[int][]indexed)
	for i, s := range spans {
		if math.IsNaN(s.Size) || s.Size <= 0 {
			return nil, &MalformedInputError{SpanIndex: i, Reason: fmt.Sprintf("non-positive font size %v", s.Size)}
		}
		if s.Page < 0 || (pageCount > 0 && s.Page >= pageCount) {
			return nil, &MalformedInputError{SpanIndex: i, Reason: fmt.Sprintf("page index %d outside %d pages", s.Page, pageCount)}
		}
		s.Text = norm.NFKC.String(s.Text)
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		byPage[s.Page] = append(byPage[s.Page], indexed{span: s, idx: i})
	}

	out := make(map[int][]Line, len(byPage))
	for page, group := range byPage {
		sort.SliceStable(group, func(i, j int) bool {
			a, b := group[i].span.BBox, group[j].span.BBox
			if a.CenterY() != b.CenterY() {
				return a.CenterY() < b.CenterY()
			}
			if a.X0 != b.X0 {
				return a.X0 < b.X0
			}
			return group[i].idx < group[j].idx
		})

		var lines []Line
		var current []Span
		var anchor Span
		for _, g := range group {
			s := g.span
			if len(current) > 0 {
				band := cfg.LineTolerance * min(s.Size, anchor.Size)
				if math.Abs(s.BBox.CenterY()-anchor.BBox.CenterY()) <= band {
					current = append(current, s)
					continue
				}
				lines = append(lines, buildLine(current, page))
			}
			current = []Span{s}
			anchor = s
		}
		if len(current) > 0 {
			lines = append(lines, buildLine(current, page))
		}

		sort.SliceStable(lines, func(i, j int) bool {
			if lines[i].BBox.Y0 != lines[j].BBox.Y0 {
				return lines[i].BBox.Y0 < lines[j].BBox.Y0
			}
			return lines[i].BBox.X0 < lines[j].BBox.X0
		})
		for i := range lines {
			lines[i].Index = i
		}
		out[page] = lines
	}
	return out, nil
}

// buildLine derives the aggregate attributes of a line from its spans.
func buildLine(spans []Span, page int) Line {
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].BBox.X0 < spans[j].BBox.X0 })

	var sb strings.Builder
	charsBySize := make(map[float64]int)
	var total, bold int
	box := spans[0].BBox
	for i, s := range spans {
		if i > 0 {
			prev := spans[i-1]
			if s.BBox.X0-prev.BBox.X1 > wordGap*min(s.Size, prev.Size) {
				sb.WriteByte(' ')
			}
			box = box.Union(s.BBox)
		}
		sb.WriteString(s.Text)

		n := countChars(s.Text)
		charsBySize[quantize(s.Size)] += n
		total += n
		if s.Bold {
			bold += n
		}
	}

	dominant, best := 0.0, -1
	for size, n := range charsBySize {
		if n > best || (n == best && size > dominant) {
			dominant, best = size, n
		}
	}

	return Line{
		Spans:        spans,
		Text:         strings.Join(strings.Fields(sb.String()), " "),
		DominantSize: dominant,
		Bold:         total > 0 && bold*2 > total,
		BBox:         box,
		Page:         page,
	}
}

// countChars counts non-space runes.
func countChars(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// quantize rounds a font size to 0.1pt so that decoder noise does not split
// one visual size into several.
func quantize(size float64) float64 {
	return math.Round(size*10) / 10
}

// sortedPages returns the page indices of lines in ascending order.
func sortedPages(lines map[int][]Line) []int {
	pages := make([]int, 0, len(lines))
	for p := range lines {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
