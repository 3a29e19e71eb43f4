package outline

import (
	"path/filepath"
	"strings"
)

var placeholderPrefixes = []string{
	"untitled",
	"microsoft word - ",
	"microsoft powerpoint - ",
}

var documentExts = []string{".pdf", ".doc", ".docx", ".html", ".htm", ".md", ".txt"}

// ExtractTitle prefers a well-formed metadata title and otherwise falls back
// to the largest line on the first page, topmost on ties. It returns "" when
// the first page has no lines.
func ExtractTitle(meta Metadata, firstPage []Line) string {
	if t := metadataTitle(meta); t != "" {
		return t
	}

	var best *Line
	for i := range firstPage {
		l := &firstPage[i]
		if best == nil ||
			l.DominantSize > best.DominantSize ||
			(l.DominantSize == best.DominantSize && l.BBox.Y0 < best.BBox.Y0) {
			best = l
		}
	}
	if best == nil {
		return ""
	}
	return best.Text
}

// metadataTitle returns the trimmed metadata title, or "" if it is missing
// or a generic placeholder.
func metadataTitle(meta Metadata) string {
	t := strings.Join(strings.Fields(meta.Title), " ")
	if t == "" {
		return ""
	}
	lower := strings.ToLower(t)
	for _, p := range placeholderPrefixes {
		if strings.HasPrefix(lower, p) {
			return ""
		}
	}
	for _, ext := range documentExts {
		if strings.HasSuffix(lower, ext) {
			return ""
		}
	}
	if meta.Filename != "" {
		base := filepath.Base(meta.Filename)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if strings.EqualFold(t, stem) || strings.EqualFold(t, base) {
			return ""
		}
	}
	return t
}
