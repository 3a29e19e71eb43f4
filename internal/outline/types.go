// Package outline infers a document title and an H1-H3 heading outline from
// visual layout cues (font size, weight, casing, position) of decoded text
// spans. It performs no I/O: decoders produce a Document, Process turns it
// into an Outline.
package outline

import "fmt"

// BBox is a rectangle in page coordinates with the origin at the top-left
// corner of the page; Y grows downward.
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		X0: min(b.X0, o.X0),
		Y0: min(b.Y0, o.Y0),
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
	}
}

// CenterY is the vertical center of the box.
func (b BBox) CenterY() float64 { return (b.Y0 + b.Y1) / 2 }

// Span is an atomic text run with uniform font and style.
type Span struct {
	Text     string
	FontName string
	Size     float64
	Bold     bool
	Italic   bool
	BBox     BBox
	Page     int // 0-based
}

// Metadata carries what the decoder knows about the document as a whole.
type Metadata struct {
	Title     string
	PageCount int       // 0 when unknown
	Filename  string    // used to reject placeholder titles
	Pages     []PageDim // optional, indexed by page
}

// PageDim is the size of a page in the same units as span boxes.
type PageDim struct {
	Width  float64
	Height float64
}

// Document is the decoder's output and the engine's input.
type Document struct {
	Spans    []Span
	Metadata Metadata
}

// Line is a run of spans sharing a page and a vertical band.
type Line struct {
	Spans        []Span
	Text         string
	DominantSize float64
	Bold         bool
	BBox         BBox
	Page         int
	Index        int // position within the page, top to bottom
}

// StyleProfile is the document-wide baseline used by filtering.
type StyleProfile struct {
	BodySize  float64
	Histogram map[float64]int // size -> character-weighted count
	LineCount int
	Degraded  bool
}

// HeadingCandidate is a line, or a run of merged lines, that may be a heading.
type HeadingCandidate struct {
	Text      string
	Size      float64
	Bold      bool
	Caps      bool
	Page      int
	BBox      BBox
	LineIndex int  // index of the last line folded into this candidate
	Withheld  bool // numbering-only token waiting for its title line
	Qualified bool // a withheld token that passes the heading rules by itself
}

// Level is a heading rank.
type Level int

const (
	LevelNone Level = iota
	H1
	H2
	H3
)

// MaxLevels is the number of heading levels ever emitted.
const MaxLevels = 3

func (l Level) String() string {
	switch l {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	default:
		return ""
	}
}

// MarshalText renders the level as "H1", "H2" or "H3".
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	switch string(b) {
	case "H1":
		*l = H1
	case "H2":
		*l = H2
	case "H3":
		*l = H3
	default:
		return fmt.Errorf("unknown heading level %q", b)
	}
	return nil
}

// Heading is a classified heading in the final outline.
type Heading struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"` // 1-based

	Top float64 `json:"-"` // vertical position of the originating candidate
}

// Outline is the per-document result. Error is set only on the fallback
// shape produced when a stage fails.
type Outline struct {
	Title    string    `json:"title"`
	Headings []Heading `json:"outline"`
	Error    string    `json:"error,omitempty"`
}
