package outline

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	numberingPattern  = regexp.MustCompile(`^(?:\d+(?:\.\d+)*\.?|[A-Z]\.)$`)
	romanPattern      = regexp.MustCompile(`^M{0,3}(?:CM|CD|D?C{0,3})(?:XC|XL|L?X{0,3})(?:IX|IV|V?I{0,3})$`)
	pageNumberPattern = regexp.MustCompile(`(?i)^(?:page\s+)?[-–—(\[]?\s*\d+\s*[-–—)\]]?(?:\s*(?:of|/)\s*\d+)?$`)
	lowerRomanPattern = regexp.MustCompile(`^[ivxlcdm]+$`)
	citationPattern   = regexp.MustCompile(`\[[A-Z]+[0-9]{2,}\]`)
)

// ruleContext is the read-only state every rule sees.
type ruleContext struct {
	profile StyleProfile
	cfg     Config
	pages   []PageDim
}

// rule is a pure predicate over a line.
type rule func(l Line, rc *ruleContext) bool

// headingRules qualify a line as a heading candidate; any match suffices.
var headingRules = []rule{
	largerThanBody,
	boldAtBodySize,
	shortAllCaps,
}

// rejectRules exclude a line regardless of its style.
var rejectRules = []rule{
	punctuationOnly,
	pageNumberOnly,
	hasCitation,
	tooManyWords,
	inPageMargin,
}

func largerThanBody(l Line, rc *ruleContext) bool {
	return l.DominantSize >= rc.profile.BodySize*rc.cfg.BodySizeRatio && l.DominantSize > rc.profile.BodySize
}

func boldAtBodySize(l Line, rc *ruleContext) bool {
	return l.Bold && l.DominantSize >= rc.profile.BodySize
}

func shortAllCaps(l Line, rc *ruleContext) bool {
	return wordCount(l.Text) < rc.cfg.ShortLineWords && isCaps(l.Text)
}

func punctuationOnly(l Line, _ *ruleContext) bool {
	for _, r := range l.Text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func pageNumberOnly(l Line, _ *ruleContext) bool {
	return pageNumberPattern.MatchString(l.Text) || lowerRomanPattern.MatchString(l.Text)
}

func hasCitation(l Line, _ *ruleContext) bool {
	return citationPattern.MatchString(l.Text)
}

func tooManyWords(l Line, rc *ruleContext) bool {
	return wordCount(l.Text) > rc.cfg.MaxHeadingWords
}

func inPageMargin(l Line, rc *ruleContext) bool {
	if l.Page >= len(rc.pages) || rc.pages[l.Page].Height <= 0 {
		return false
	}
	h := rc.pages[l.Page].Height
	if rc.cfg.HeaderMargin > 0 && l.BBox.Y0 < h*rc.cfg.HeaderMargin {
		return true
	}
	return rc.cfg.FooterMargin > 0 && l.BBox.Y1 > h*(1-rc.cfg.FooterMargin)
}

// Filter selects heading candidates in page order, then vertical order.
// Numbering-only lines ("3.", "2.1", "IV") are returned withheld so the
// recombiner can prefix them onto the line that follows.
func Filter(lines map[int][]Line, profile StyleProfile, meta Metadata, cfg Config) []HeadingCandidate {
	rc := &ruleContext{profile: profile, cfg: cfg.withDefaults(), pages: meta.Pages}

	var out []HeadingCandidate
	for _, page := range sortedPages(lines) {
		for _, l := range lines[page] {
			if matchAny(rejectRules, l, rc) {
				continue
			}
			heading := matchAny(headingRules, l, rc)
			if isNumberingToken(l.Text) {
				if l.DominantSize >= profile.BodySize {
					c := newCandidate(l)
					c.Withheld = true
					// Letter tokens ("I", "IV.") can stand alone as headings.
					c.Qualified = heading && strings.IndexFunc(l.Text, unicode.IsLetter) >= 0
					out = append(out, c)
				}
				continue
			}
			if heading {
				out = append(out, newCandidate(l))
			}
		}
	}
	return out
}

func matchAny(rules []rule, l Line, rc *ruleContext) bool {
	for _, r := range rules {
		if r(l, rc) {
			return true
		}
	}
	return false
}

func newCandidate(l Line) HeadingCandidate {
	return HeadingCandidate{
		Text:      l.Text,
		Size:      l.DominantSize,
		Bold:      l.Bold,
		Caps:      isCaps(l.Text),
		Page:      l.Page,
		BBox:      l.BBox,
		LineIndex: l.Index,
	}
}

// isNumberingToken reports whether text is a bare section number: "3.",
// "2.1", "A." or a roman numeral. Numerals of three or more letters need
// the trailing dot, so words such as "MIX" or "DIV" stay words.
func isNumberingToken(text string) bool {
	text = strings.TrimSpace(text)
	if numberingPattern.MatchString(text) {
		return true
	}
	roman, dotted := strings.CutSuffix(text, ".")
	if roman == "" || !romanPattern.MatchString(roman) {
		return false
	}
	return dotted || len(roman) <= 2
}

// isCaps reports whether text has at least one cased letter and no
// lower-case ones. Digits and punctuation are ignored.
func isCaps(text string) bool {
	upper := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			upper = true
		}
	}
	return upper
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
