package outline

// Config holds the tunable thresholds of the heading heuristics.
type Config struct {
	BodySizeRatio      float64 // candidate if size >= body * ratio
	ShortLineWords     int     // all-caps lines below this word count qualify
	MaxHeadingWords    int     // lines above this word count are never headings
	LineTolerance      float64 // same-line band, as a fraction of the smaller span size
	AdjacencyTolerance float64 // max vertical gap between merged lines, as a fraction of size
	SizeTolerance      float64 // max size difference between merged lines, in points
	SizeEpsilon        float64 // sizes closer than this share a level, in points
	MinProfileLines    int     // below this the style profile is degraded
	HeaderMargin       float64 // fraction of page height; 0 disables
	FooterMargin       float64 // fraction of page height; 0 disables
}

// DefaultConfig returns the thresholds used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BodySizeRatio:      1.05,
		ShortLineWords:     12,
		MaxHeadingWords:    20,
		LineTolerance:      0.5,
		AdjacencyTolerance: 1.0,
		SizeTolerance:      0.5,
		SizeEpsilon:        0.25,
		MinProfileLines:    3,
		HeaderMargin:       0.10,
		FooterMargin:       0.10,
	}
}

// withDefaults replaces unusable values with their defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BodySizeRatio <= 0 {
		c.BodySizeRatio = d.BodySizeRatio
	}
	if c.ShortLineWords <= 0 {
		c.ShortLineWords = d.ShortLineWords
	}
	if c.MaxHeadingWords <= 0 {
		c.MaxHeadingWords = d.MaxHeadingWords
	}
	if c.LineTolerance <= 0 {
		c.LineTolerance = d.LineTolerance
	}
	if c.AdjacencyTolerance <= 0 {
		c.AdjacencyTolerance = d.AdjacencyTolerance
	}
	if c.SizeTolerance < 0 {
		c.SizeTolerance = d.SizeTolerance
	}
	if c.SizeEpsilon < 0 {
		c.SizeEpsilon = d.SizeEpsilon
	}
	if c.MinProfileLines <= 0 {
		c.MinProfileLines = d.MinProfileLines
	}
	if c.HeaderMargin < 0 || c.HeaderMargin >= 0.5 {
		c.HeaderMargin = 0
	}
	if c.FooterMargin < 0 || c.FooterMargin >= 0.5 {
		c.FooterMargin = 0
	}
	return c
}
