package outline

import "sort"

// LevelMap assigns heading levels to font sizes. Sizes within epsilon of a
// level's anchor share that level.
type LevelMap struct {
	anchors []float64 // descending, at most MaxLevels
	epsilon float64
}

// BuildLevelMap clusters the distinct candidate sizes, largest first, and
// keeps the top MaxLevels clusters. Each cluster is anchored on its largest
// member so that a run of near-equal sizes cannot drift into one level.
func BuildLevelMap(candidates []HeadingCandidate, cfg Config) LevelMap {
	cfg = cfg.withDefaults()

	sizes := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		sizes = append(sizes, c.Size)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	m := LevelMap{epsilon: cfg.SizeEpsilon}
	for _, s := range sizes {
		if len(m.anchors) > 0 && m.anchors[len(m.anchors)-1]-s <= m.epsilon {
			continue
		}
		if len(m.anchors) == MaxLevels {
			break
		}
		m.anchors = append(m.anchors, s)
	}
	return m
}

// Level returns the level for size, or LevelNone if size falls below the
// third cluster.
func (m LevelMap) Level(size float64) Level {
	for i, a := range m.anchors {
		if a-size <= m.epsilon && size-a <= m.epsilon {
			return Level(i + 1)
		}
	}
	return LevelNone
}

// Len is the number of populated levels.
func (m LevelMap) Len() int { return len(m.anchors) }

// Classify turns candidates into headings. Candidates outside the three
// largest size clusters are dropped.
func Classify(candidates []HeadingCandidate, cfg Config) []Heading {
	return BuildLevelMap(candidates, cfg).Assign(candidates)
}

// Assign gives each candidate the level of its size, in input order.
func (m LevelMap) Assign(candidates []HeadingCandidate) []Heading {
	out := make([]Heading, 0, len(candidates))
	for _, c := range candidates {
		lvl := m.Level(c.Size)
		if lvl == LevelNone {
			continue
		}
		out = append(out, Heading{
			Level: lvl,
			Text:  c.Text,
			Page:  c.Page + 1,
			Top:   c.BBox.Y0,
		})
	}
	return out
}
