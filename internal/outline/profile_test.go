package outline

import "testing"

func TestComputeProfile_CharacterWeightedMode(t *testing.T) {
	lines := map[int][]Line{
		0: {
			line("Heading One", 18, true, 0, 0, 50),
			line("Heading Two", 18, true, 0, 1, 80),
			line("Heading Six", 18, true, 0, 2, 110),
			line("A single but very long paragraph line of body text that dominates the character count", 11, false, 0, 3, 140),
		},
	}
	p := ComputeProfile(lines, DefaultConfig())
	if p.BodySize != 11 {
		t.Errorf("expected body size 11, got %v", p.BodySize)
	}
	if p.Degraded {
		t.Error("expected profile not degraded")
	}
	if p.LineCount != 4 {
		t.Errorf("expected 4 lines, got %d", p.LineCount)
	}
}

func TestComputeProfile_TieGoesToSmallerSize(t *testing.T) {
	lines := map[int][]Line{
		0: {
			line("abcd", 14, false, 0, 0, 10),
			line("efgh", 10, false, 0, 1, 30),
			line("ijkl", 12, false, 0, 2, 50),
		},
	}
	p := ComputeProfile(lines, DefaultConfig())
	if p.BodySize != 10 {
		t.Errorf("expected tie broken toward 10, got %v", p.BodySize)
	}
}

func TestComputeProfile_DegradedWithFewLines(t *testing.T) {
	lines := map[int][]Line{
		0: {
			line("Big title here", 24, true, 0, 0, 10),
			line("tiny", 9, false, 0, 1, 40),
		},
	}
	p := ComputeProfile(lines, DefaultConfig())
	if !p.Degraded {
		t.Fatal("expected degraded profile")
	}
	if p.BodySize != 9 {
		t.Errorf("expected smallest size 9 as body, got %v", p.BodySize)
	}
}

func TestComputeProfile_Empty(t *testing.T) {
	p := ComputeProfile(map[int][]Line{}, DefaultConfig())
	if !p.Degraded || p.BodySize != 0 {
		t.Errorf("expected degraded empty profile, got %+v", p)
	}
}
