package outline

import "sort"

// ComputeProfile finds the body font size: the size carrying the most
// characters across all lines, ties going to the smaller size. With fewer
// than cfg.MinProfileLines lines the smallest observed size is used instead
// and the profile is marked degraded.
func ComputeProfile(lines map[int][]Line, cfg Config) StyleProfile {
	cfg = cfg.withDefaults()

	p := StyleProfile{Histogram: make(map[float64]int)}
	smallest := 0.0
	for _, page := range sortedPages(lines) {
		for _, l := range lines[page] {
			p.LineCount++
			p.Histogram[l.DominantSize] += countChars(l.Text)
			if smallest == 0 || l.DominantSize < smallest {
				smallest = l.DominantSize
			}
		}
	}

	if p.LineCount < cfg.MinProfileLines {
		p.BodySize = smallest
		p.Degraded = true
		return p
	}

	sizes := make([]float64, 0, len(p.Histogram))
	for s := range p.Histogram {
		sizes = append(sizes, s)
	}
	sort.Float64s(sizes)
	best := -1
	for _, s := range sizes {
		if p.Histogram[s] > best {
			p.BodySize, best = s, p.Histogram[s]
		}
	}
	return p
}
