package outline

import (
	"math"
	"strings"
)

// Recombine merges adjacent candidates that form one heading: a numbering
// token followed by its title line, or a heading wrapped over two lines.
// It is a single greedy left-to-right pass; a merged candidate is not
// considered again, so headings broken over three or more lines stay split.
// A withheld token that found no partner is kept only if it qualified as a
// heading on its own.
func Recombine(candidates []HeadingCandidate, cfg Config) []HeadingCandidate {
	cfg = cfg.withDefaults()

	out := make([]HeadingCandidate, 0, len(candidates))
	for i := 0; i < len(candidates); i++ {
		cur := candidates[i]
		if i+1 < len(candidates) && mergeable(cur, candidates[i+1], cfg) {
			out = append(out, merge(cur, candidates[i+1]))
			i++
			continue
		}
		if cur.Withheld {
			if !cur.Qualified {
				continue
			}
			cur.Withheld = false
		}
		out = append(out, cur)
	}
	return out
}

func mergeable(a, b HeadingCandidate, cfg Config) bool {
	if b.Withheld || a.Page != b.Page || b.LineIndex != a.LineIndex+1 {
		return false
	}
	if math.Abs(a.Size-b.Size) > cfg.SizeTolerance {
		return false
	}
	gap := b.BBox.Y0 - a.BBox.Y1
	if gap > cfg.AdjacencyTolerance*a.Size {
		return false
	}
	if a.Withheld {
		return true
	}
	return !endsSentence(a.Text) && a.Bold == b.Bold
}

func merge(a, b HeadingCandidate) HeadingCandidate {
	text := a.Text + " " + b.Text
	return HeadingCandidate{
		Text:      text,
		Size:      a.Size,
		Bold:      a.Bold || b.Bold,
		Caps:      isCaps(text),
		Page:      a.Page,
		BBox:      a.BBox.Union(b.BBox),
		LineIndex: b.LineIndex,
	}
}

func endsSentence(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasSuffix(text, ".") ||
		strings.HasSuffix(text, "!") ||
		strings.HasSuffix(text, "?") ||
		strings.HasSuffix(text, "。")
}
