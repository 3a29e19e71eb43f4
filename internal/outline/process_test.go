package outline

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProcess_SingleHeadingOverBody(t *testing.T) {
	spans := append([]Span{span("Introduction", 24, true, 0, 100)}, bodySpans(50, 17, 12)...)
	doc := Document{Spans: spans, Metadata: Metadata{PageCount: 3}}

	out, rep, err := Process(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Title != "Introduction" {
		t.Errorf("expected title %q, got %q", "Introduction", out.Title)
	}
	if len(out.Headings) != 1 {
		t.Fatalf("expected 1 heading, got %d: %+v", len(out.Headings), out.Headings)
	}
	h := out.Headings[0]
	if h.Level != H1 || h.Text != "Introduction" || h.Page != 1 {
		t.Errorf("unexpected heading %+v", h)
	}
	if rep.Profile.BodySize != 12 {
		t.Errorf("expected body size 12, got %v", rep.Profile.BodySize)
	}
	if rep.Levels != 1 {
		t.Errorf("expected 1 level in use, got %d", rep.Levels)
	}
	if len(rep.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", rep.Warnings)
	}
}

func TestProcess_MetadataTitleWins(t *testing.T) {
	spans := append([]Span{span("Introduction", 24, true, 0, 100)}, bodySpans(10, 10, 12)...)
	doc := Document{Spans: spans, Metadata: Metadata{Title: "Design Review Notes", PageCount: 1}}
	out, _, err := Process(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Title != "Design Review Notes" {
		t.Errorf("expected metadata title, got %q", out.Title)
	}
}

func TestRun_MalformedFallback(t *testing.T) {
	doc := Document{Spans: []Span{span("zero", 0, false, 0, 100)}, Metadata: Metadata{PageCount: 1}}
	out, _ := Run(doc, DefaultConfig())
	if !out.Failed() {
		t.Fatal("expected fallback outline")
	}
	b, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"title":"","outline":[],"error":"malformed input: span 0: non-positive font size 0"}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}
}

func TestProcess_SingleLineDegrades(t *testing.T) {
	for _, s := range []Span{
		span("Lonely line", 12, false, 0, 100),
		span("Lonely Bold Line", 30, true, 0, 100),
	} {
		out, rep, err := Process(Document{Spans: []Span{s}}, DefaultConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Headings) > 1 {
			t.Errorf("expected at most one heading, got %d", len(out.Headings))
		}
		if !rep.Has(DegradedProfileWarning) {
			t.Error("expected degraded profile warning")
		}
		if out.Title != s.Text {
			t.Errorf("expected title %q, got %q", s.Text, out.Title)
		}
	}
}

func TestProcess_EmptyDocument(t *testing.T) {
	out, rep, err := Process(Document{}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Title != "" || len(out.Headings) != 0 || out.Headings == nil {
		t.Errorf("expected empty non-nil outline, got %+v", out)
	}
	for _, k := range []WarningKind{DegradedProfileWarning, NoHeadingsFound, TitleExtractionFailure} {
		if !rep.Has(k) {
			t.Errorf("expected warning %s", k)
		}
	}
}

func TestProcess_ReadingOrder(t *testing.T) {
	var spans []Span
	spans = append(spans, span("Second Chapter", 20, true, 1, 100))
	spans = append(spans, bodySpans(34, 17, 12)...)
	spans = append(spans, span("First Chapter", 20, true, 0, 500))
	spans = append(spans, span("Preface", 20, true, 0, 100))

	out, _, err := Process(Document{Spans: spans, Metadata: Metadata{PageCount: 2}}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Preface", "First Chapter", "Second Chapter"}
	if len(out.Headings) != len(want) {
		t.Fatalf("expected %d headings, got %+v", len(want), out.Headings)
	}
	for i, w := range want {
		if out.Headings[i].Text != w {
			t.Errorf("heading[%d]: expected %q, got %q", i, w, out.Headings[i].Text)
		}
	}
	for i := 1; i < len(out.Headings); i++ {
		a, b := out.Headings[i-1], out.Headings[i]
		if a.Page > b.Page || (a.Page == b.Page && a.Top > b.Top) {
			t.Errorf("headings %d and %d out of order", i-1, i)
		}
	}
	if out.Title != "Preface" {
		t.Errorf("expected topmost largest line as title, got %q", out.Title)
	}
}

func TestProcess_NeverMoreThanThreeLevels(t *testing.T) {
	spans := bodySpans(40, 20, 11)
	for i, size := range []float64{30, 26, 22, 18, 14} {
		spans = append(spans, span(strings.Repeat("H", i+1)+" Heading", size, true, 0, 600+float64(i)*40))
	}
	out, rep, err := Process(Document{Spans: spans}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Levels != MaxLevels {
		t.Errorf("expected %d levels in use, got %d", MaxLevels, rep.Levels)
	}
	levels := map[Level]bool{}
	for _, h := range out.Headings {
		levels[h.Level] = true
	}
	if len(levels) > MaxLevels {
		t.Errorf("expected at most %d levels, got %d", MaxLevels, len(levels))
	}
	if len(out.Headings) != 3 {
		t.Errorf("expected the three largest sizes only, got %d headings", len(out.Headings))
	}
}

func TestProcess_Idempotent(t *testing.T) {
	spans := append([]Span{
		span("Overview", 20, true, 0, 100),
		span("1.", 16, true, 1, 100),
		span("Background", 16, true, 1, 120),
	}, bodySpans(30, 15, 11)...)
	doc := Document{Spans: spans, Metadata: Metadata{PageCount: 2}}

	first, _, err := Process(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := json.Marshal(first)
	for i := 0; i < 5; i++ {
		again, _, _ := Process(doc, DefaultConfig())
		b, _ := json.Marshal(again)
		if string(a) != string(b) {
			t.Fatalf("run %d differs:\n%s\n%s", i, a, b)
		}
	}
	if !strings.Contains(string(a), `"1. Background"`) {
		t.Errorf("expected numbered heading to be reassembled, got %s", a)
	}
}

func TestProcess_NumeralLetterWordsStayHeadings(t *testing.T) {
	for _, word := range []string{"CIVIL", "DVD", "MIX", "LID", "DIV"} {
		t.Run(word, func(t *testing.T) {
			spans := append([]Span{span(word, 18, true, 0, 100)}, bodySpans(30, 30, 12)...)
			out, _, err := Process(Document{Spans: spans, Metadata: Metadata{PageCount: 1}}, DefaultConfig())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out.Headings) != 1 || out.Headings[0].Text != word || out.Headings[0].Level != H1 {
				t.Errorf("expected %q as the only H1, got %+v", word, out.Headings)
			}
		})
	}
}

func TestProcess_RomanNumberedHeading(t *testing.T) {
	spans := []Span{
		span("II.", 18, true, 0, 100),
		span("Methods", 18, true, 0, 122),
	}
	spans = append(spans, bodySpans(30, 30, 12)...)
	out, _, err := Process(Document{Spans: spans, Metadata: Metadata{PageCount: 1}}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Headings) != 1 || out.Headings[0].Text != "II. Methods" {
		t.Errorf("expected one heading %q, got %+v", "II. Methods", out.Headings)
	}
}

func TestProcess_RunningHeaderAndFooterIgnored(t *testing.T) {
	var spans []Span
	pages := make([]PageDim, 3)
	for p := range pages {
		pages[p] = PageDim{Width: 612, Height: 792}
		spans = append(spans,
			span("ACME QUARTERLY REPORT", 10, false, p, 20),
			span("CONFIDENTIAL", 10, true, p, 760),
		)
	}
	spans = append(spans, span("Introduction", 24, true, 0, 100))
	spans = append(spans, bodySpans(50, 17, 12)...)
	doc := Document{Spans: spans, Metadata: Metadata{PageCount: 3, Pages: pages}}

	out, _, err := Process(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Headings) != 1 || out.Headings[0].Text != "Introduction" || out.Headings[0].Level != H1 {
		t.Errorf("expected only the Introduction heading, got %+v", out.Headings)
	}
	if out.Title != "Introduction" {
		t.Errorf("expected title %q, got %q", "Introduction", out.Title)
	}

	cfg := DefaultConfig()
	cfg.HeaderMargin = 0
	cfg.FooterMargin = 0
	out, _, err = Process(doc, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Headings) == 1 {
		t.Error("expected running headers to qualify once margins are disabled")
	}
}
