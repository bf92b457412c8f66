package angle

import (
	"math"
	"testing"
)

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		raw  any
		want float64
	}{
		{90.0, 90.0},
		{float32(45.5), 45.5},
		{int(30), 30.0},
		{int64(-45), -45.0},
	}
	for _, c := range cases {
		got, ok := Parse(c.raw)
		if !ok {
			t.Errorf("Parse(%v): expected ok", c.raw)
			continue
		}
		if math.Abs(got-c.want) > 0.001 {
			t.Errorf("Parse(%v): expected %.3f, got %.3f", c.raw, c.want, got)
		}
	}
}

func TestParseString(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"45", 45},
		{"-30.5", -30.5},
		{"angle: 92.25 deg", 92.25},
		{"+12.5", 12.5},
	}
	for _, c := range cases {
		got, ok := Parse(c.raw)
		if !ok {
			t.Errorf("Parse(%q): expected ok", c.raw)
			continue
		}
		if math.Abs(got-c.want) > 0.001 {
			t.Errorf("Parse(%q): expected %.3f, got %.3f", c.raw, c.want, got)
		}
	}
}

func TestParseUnparsable(t *testing.T) {
	for _, raw := range []any{nil, "", "no number here", true, []int{1}} {
		if _, ok := Parse(raw); ok {
			t.Errorf("Parse(%v): expected not ok", raw)
		}
	}
}

func TestAnalyzeAbsoluteConvention(t *testing.T) {
	cases := []struct {
		raw       float64
		deviation float64
		isSlope   bool
	}{
		{90, 0, false},
		{90.5, 0.5, false}, // near-straight override
		{93, 3, true},
		{87, 3, true},
		{-90, 0, false}, // negative full angle, same band
		{60, 30, true},  // band boundary, inclusive
		{120, 30, true}, // band boundary, inclusive
	}
	for _, c := range cases {
		a := Analyze(c.raw)
		if a.Convention != ConventionAbsolute {
			t.Errorf("Analyze(%v): expected Absolute, got %s", c.raw, a.Convention)
		}
		if math.Abs(a.DeviationDeg-c.deviation) > 0.001 {
			t.Errorf("Analyze(%v): expected deviation %.2f, got %.2f", c.raw, c.deviation, a.DeviationDeg)
		}
		if a.IsSlope != c.isSlope {
			t.Errorf("Analyze(%v): expected isSlope=%v, got %v", c.raw, c.isSlope, a.IsSlope)
		}
	}
}

func TestAnalyzeDeviationConvention(t *testing.T) {
	cases := []struct {
		raw       float64
		deviation float64
		isSlope   bool
	}{
		{2, 2, true},
		{0.5, 0.5, false}, // near-straight override
		{0, 0, false},
		{-15, 15, true},
		{59.9, 59.9, true},  // just outside the absolute band
		{120.1, 120.1, true},
		{45, 45, true},
	}
	for _, c := range cases {
		a := Analyze(c.raw)
		if a.Convention != ConventionDeviation {
			t.Errorf("Analyze(%v): expected Deviation, got %s", c.raw, a.Convention)
		}
		if math.Abs(a.DeviationDeg-c.deviation) > 0.001 {
			t.Errorf("Analyze(%v): expected deviation %.2f, got %.2f", c.raw, c.deviation, a.DeviationDeg)
		}
		if a.IsSlope != c.isSlope {
			t.Errorf("Analyze(%v): expected isSlope=%v, got %v", c.raw, c.isSlope, a.IsSlope)
		}
	}
}

func TestAnalyzeNil(t *testing.T) {
	a := Analyze(nil)
	if a.Known {
		t.Error("Analyze(nil): expected Known=false")
	}
	if a.Convention != ConventionUnknown {
		t.Errorf("Analyze(nil): expected Unknown convention, got %s", a.Convention)
	}
	if a.IsSlope {
		t.Error("Analyze(nil): expected IsSlope=false")
	}
}

func TestClassifyEndFlagWins(t *testing.T) {
	// Slope flag with a parsable angle: miter with the analyzed deviation.
	info := ClassifyEnd(true, 95.0)
	if info.Type != Miter {
		t.Errorf("expected Miter, got %s", info.Type)
	}
	if math.Abs(info.DeviationDeg-5.0) > 0.001 {
		t.Errorf("expected deviation 5, got %.2f", info.DeviationDeg)
	}

	// No flag, no angle: plain straight cut.
	info = ClassifyEnd(false, nil)
	if info.Type != Straight || info.DeviationDeg != 0 {
		t.Errorf("expected Straight/0, got %s/%.2f", info.Type, info.DeviationDeg)
	}
}

func TestClassifyEndUnparsableAngleStillMiter(t *testing.T) {
	// A sloped end with garbage angle data stays a miter with unknown
	// magnitude; it must never be dropped.
	info := ClassifyEnd(true, "not an angle")
	if info.Type != Miter {
		t.Errorf("expected Miter, got %s", info.Type)
	}
	if info.DeviationDeg != 0 {
		t.Errorf("expected deviation 0 for unparsable angle, got %.2f", info.DeviationDeg)
	}
}

func TestClassifyEndAnalyzerFallback(t *testing.T) {
	// Flag says straight but the angle alone indicates a bevel: the
	// deviation is still reported.
	info := ClassifyEnd(false, 45.0)
	if info.Type != Straight {
		t.Errorf("expected Straight (flag is authoritative), got %s", info.Type)
	}
	if math.Abs(info.DeviationDeg-45.0) > 0.001 {
		t.Errorf("expected deviation 45, got %.2f", info.DeviationDeg)
	}
}

func TestClassifyEndStringAngle(t *testing.T) {
	info := ClassifyEnd(true, "92.5")
	if info.Type != Miter {
		t.Errorf("expected Miter, got %s", info.Type)
	}
	if math.Abs(info.DeviationDeg-2.5) > 0.001 {
		t.Errorf("expected deviation 2.5, got %.2f", info.DeviationDeg)
	}
}
