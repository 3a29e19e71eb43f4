package outline

import "sort"

// Assemble builds the outline, ordering headings by page then vertical
// position. The input slice is not modified.
func Assemble(title string, headings []Heading) Outline {
	hs := make([]Heading, len(headings))
	copy(hs, headings)
	sort.SliceStable(hs, func(i, j int) bool {
		if hs[i].Page != hs[j].Page {
			return hs[i].Page < hs[j].Page
		}
		return hs[i].Top < hs[j].Top
	})
	return Outline{Title: title, Headings: hs}
}

// Fallback is the outline reported for a document that could not be
// processed.
func Fallback(err error) Outline {
	return Outline{Headings: []Heading{}, Error: err.Error()}
}

// Failed reports whether o is a fallback outline.
func (o Outline) Failed() bool { return o.Error != "" }
