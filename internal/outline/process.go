package outline

// Process runs every stage over doc. The returned error is non-nil only for
// fatal input violations (*MalformedInputError); non-fatal conditions are
// listed in the report.
func Process(doc Document, cfg Config) (Outline, Report, error) {
	cfg = cfg.withDefaults()
	var rep Report

	lines, err := Normalize(doc.Spans, doc.Metadata.PageCount, cfg)
	if err != nil {
		return Outline{}, rep, err
	}

	profile := ComputeProfile(lines, cfg)
	rep.Profile = profile
	rep.Lines = profile.LineCount
	if profile.Degraded {
		rep.warn(DegradedProfileWarning, "only %d lines, using smallest size %.1f as body size", profile.LineCount, profile.BodySize)
	}

	candidates := Recombine(Filter(lines, profile, doc.Metadata, cfg), cfg)
	rep.Candidates = len(candidates)
	levels := BuildLevelMap(candidates, cfg)
	rep.Levels = levels.Len()
	headings := levels.Assign(candidates)
	if len(headings) == 0 {
		rep.warn(NoHeadingsFound, "no heading candidates")
	}

	title := ExtractTitle(doc.Metadata, lines[0])
	if title == "" {
		rep.warn(TitleExtractionFailure, "no metadata title and no text on the first page")
	}

	return Assemble(title, headings), rep, nil
}

// Run is Process with the error folded into the fallback outline, for
// callers that handle many documents and must not stop on one.
func Run(doc Document, cfg Config) (Outline, Report) {
	o, rep, err := Process(doc, cfg)
	if err != nil {
		return Fallback(err), rep
	}
	return o, rep
}
