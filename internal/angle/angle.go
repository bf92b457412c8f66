// Package angle infers end-cut geometry from the raw angle values supplied
// by the optimizer. Upstream geometry sources report either the full angle
// from a reference axis (90° = square cut) or the deviation from
// perpendicular (0° = square cut) without declaring which, so the
// convention is inferred from the value itself.
package angle

import (
	"math"
	"regexp"
	"strconv"
)

// Convention identifies which angle convention a raw value uses.
type Convention int

const (
	ConventionUnknown   Convention = iota // No parsable angle
	ConventionAbsolute                    // Angle from reference axis, 90° = straight
	ConventionDeviation                   // Deviation from perpendicular, 0° = straight
)

func (c Convention) String() string {
	switch c {
	case ConventionAbsolute:
		return "Absolute"
	case ConventionDeviation:
		return "Deviation"
	default:
		return "Unknown"
	}
}

const (
	// Absolute-convention band. Genuine structural bevels rarely exceed
	// ~30° of deviation in either convention, so values in [60,120] can
	// only be full angles measured against the reference axis.
	absoluteBandMin = 60.0
	absoluteBandMax = 120.0

	// Deviations under this are treated as square cuts regardless of
	// convention. Sub-degree bevels are geometry extraction noise.
	straightToleranceDeg = 1.0
)

var numberPattern = regexp.MustCompile(`[-+]?[0-9]+(?:\.[0-9]+)?`)

// Parse extracts a float from a raw angle value. It accepts numeric types,
// strings containing an embedded signed decimal, and nil. It is total:
// unparsable input yields ok=false, never a panic or an error.
func Parse(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		match := numberPattern.FindString(v)
		if match == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Analysis is the result of convention inference over a raw angle.
type Analysis struct {
	Convention   Convention
	DeviationDeg float64
	Known        bool // false when no angle could be parsed
	IsSlope      bool // deviation is large enough to count as a bevel
}

// Analyze parses a raw angle and infers its convention. Values whose
// absolute magnitude falls inside [60,120] are full angles (straight =
// 90°); everything else is a deviation from perpendicular (straight = 0°).
func Analyze(raw any) Analysis {
	value, ok := Parse(raw)
	if !ok {
		return Analysis{Convention: ConventionUnknown}
	}

	abs := math.Abs(value)
	var a Analysis
	a.Known = true
	if abs >= absoluteBandMin && abs <= absoluteBandMax {
		a.Convention = ConventionAbsolute
		a.DeviationDeg = math.Abs(value - 90.0)
	} else {
		a.Convention = ConventionDeviation
		a.DeviationDeg = abs
	}
	a.IsSlope = a.DeviationDeg >= straightToleranceDeg
	return a
}

// CutType classifies an end as square or beveled.
type CutType int

const (
	Straight CutType = iota
	Miter
)

func (t CutType) String() string {
	if t == Miter {
		return "Miter"
	}
	return "Straight"
}

// EndInfo is the canonical descriptor for one end of a segment.
type EndInfo struct {
	Type         CutType
	DeviationDeg float64
}

// ClassifyEnd combines the upstream has-slope flag with angle analysis.
// The flag comes from solid geometry inspection and wins on type: an end
// flagged as sloped with an unparsable angle is still a miter, with an
// unknown (zero) deviation magnitude, never dropped.
func ClassifyEnd(hasSlope bool, rawAngle any) EndInfo {
	analysis := Analyze(rawAngle)

	info := EndInfo{Type: Straight}
	if hasSlope {
		info.Type = Miter
	}

	switch {
	case hasSlope && analysis.Known:
		info.DeviationDeg = analysis.DeviationDeg
	case analysis.IsSlope:
		info.DeviationDeg = analysis.DeviationDeg
	}
	return info
}
