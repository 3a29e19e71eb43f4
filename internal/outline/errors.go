package outline

import "fmt"

// MalformedInputError reports a span that violates the decoder contract.
// It is fatal for the document it belongs to.
type MalformedInputError struct {
	SpanIndex int
	Reason    string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: span %d: %s", e.SpanIndex, e.Reason)
}

// WarningKind classifies a non-fatal condition met while processing.
type WarningKind string

const (
	DegradedProfileWarning WarningKind = "degraded_profile"
	TitleExtractionFailure WarningKind = "title_extraction_failure"
	NoHeadingsFound        WarningKind = "no_headings_found"
)

// Warning is a non-fatal diagnostic attached to a Report.
type Warning struct {
	Kind    WarningKind
	Message string
}

// Report describes how a document was processed.
type Report struct {
	Profile    StyleProfile
	Lines      int
	Candidates int
	Levels     int // heading levels in use, at most MaxLevels
	Warnings   []Warning
}

func (r *Report) warn(kind WarningKind, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Has reports whether a warning of the given kind was recorded.
func (r Report) Has(kind WarningKind) bool {
	for _, w := range r.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}
