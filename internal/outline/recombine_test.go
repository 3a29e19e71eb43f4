package outline

import "testing"

func candidate(text string, size float64, bold bool, page, index int, y float64) HeadingCandidate {
	return newCandidate(line(text, size, bold, page, index, y))
}

func withheld(text string, size float64, page, index int, y float64) HeadingCandidate {
	c := candidate(text, size, false, page, index, y)
	c.Withheld = true
	return c
}

func TestRecombine_NumberedHeading(t *testing.T) {
	lines := map[int][]Line{
		0: {
			line("An opening paragraph of regular body text", 12, false, 0, 0, 60),
			line("3.", 16, false, 0, 1, 100),
			line("Methodology", 16, false, 0, 2, 120),
			line("More regular body text follows the heading", 12, false, 0, 3, 150),
		},
	}
	cands := Filter(lines, StyleProfile{BodySize: 12}, Metadata{}, DefaultConfig())
	got := Recombine(cands, DefaultConfig())
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %+v", len(got), got)
	}
	if got[0].Text != "3. Methodology" {
		t.Errorf("expected %q, got %q", "3. Methodology", got[0].Text)
	}
	if got[0].Size != 16 || got[0].Page != 0 {
		t.Errorf("expected size 16 on page 0, got size %v page %d", got[0].Size, got[0].Page)
	}
	if got[0].Withheld {
		t.Error("merged candidate must not be withheld")
	}
}

func TestRecombine_WrappedHeading(t *testing.T) {
	in := []HeadingCandidate{
		candidate("Effects of Temperature on", 18, true, 0, 1, 100),
		candidate("Polymer Chains", 18, true, 0, 2, 122),
	}
	got := Recombine(in, DefaultConfig())
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Text != "Effects of Temperature on Polymer Chains" {
		t.Errorf("unexpected text %q", got[0].Text)
	}
	want := BBox{X0: 72, Y0: 100, X1: in[0].BBox.X1, Y1: 140}
	if got[0].BBox != want {
		t.Errorf("expected union box %+v, got %+v", want, got[0].BBox)
	}
}

func TestRecombine_NoMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []HeadingCandidate
	}{
		{"sentence end", []HeadingCandidate{
			candidate("Overview.", 18, true, 0, 1, 100),
			candidate("Scope", 18, true, 0, 2, 122),
		}},
		{"different weight", []HeadingCandidate{
			candidate("Overview", 18, true, 0, 1, 100),
			candidate("Scope", 18, false, 0, 2, 122),
		}},
		{"different size", []HeadingCandidate{
			candidate("Overview", 18, true, 0, 1, 100),
			candidate("Scope", 14, true, 0, 2, 122),
		}},
		{"line between", []HeadingCandidate{
			candidate("Overview", 18, true, 0, 1, 100),
			candidate("Scope", 18, true, 0, 3, 160),
		}},
		{"large gap", []HeadingCandidate{
			candidate("Overview", 18, true, 0, 1, 100),
			candidate("Scope", 18, true, 0, 2, 200),
		}},
		{"different page", []HeadingCandidate{
			candidate("Overview", 18, true, 0, 5, 700),
			candidate("Scope", 18, true, 1, 6, 50),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recombine(tt.in, DefaultConfig())
			if len(got) != 2 {
				t.Fatalf("expected 2 candidates, got %d", len(got))
			}
		})
	}
}

func TestRecombine_SinglePass(t *testing.T) {
	in := []HeadingCandidate{
		candidate("A Heading That Wraps", 18, true, 0, 1, 100),
		candidate("Over Three", 18, true, 0, 2, 122),
		candidate("Lines", 18, true, 0, 3, 144),
	}
	got := Recombine(in, DefaultConfig())
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Text != "A Heading That Wraps Over Three" || got[1].Text != "Lines" {
		t.Errorf("unexpected merge result: %q, %q", got[0].Text, got[1].Text)
	}
}

func TestRecombine_DropsUnmatchedNumbering(t *testing.T) {
	in := []HeadingCandidate{
		withheld("1.", 16, 0, 1, 100),
		withheld("2.", 16, 0, 2, 120),
		candidate("Results", 16, true, 0, 7, 300),
		withheld("4.", 16, 0, 9, 400),
	}
	got := Recombine(in, DefaultConfig())
	if len(got) != 1 || got[0].Text != "Results" {
		t.Fatalf("expected only %q, got %+v", "Results", got)
	}
}

func TestRecombine_KeepsQualifiedUnmatchedToken(t *testing.T) {
	lone := withheld("IV", 18, 0, 1, 100)
	lone.Bold = true
	lone.Qualified = true
	in := []HeadingCandidate{
		lone,
		candidate("Results", 18, true, 0, 5, 300),
	}
	got := Recombine(in, DefaultConfig())
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %+v", got)
	}
	if got[0].Text != "IV" || got[0].Withheld {
		t.Errorf("expected %q as an ordinary candidate, got %+v", "IV", got[0])
	}
}
