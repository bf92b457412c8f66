// Package layout computes the deterministic visual layout of a cutting
// pattern: display ordering, flush cumulative positions, and the
// classification of every internal boundary between adjacent segments.
//
// The layout is a pure function of the pattern data. Both the interactive
// bar diagram and the print/export report consume the same output, so two
// independent renders of identical input must agree byte for byte.
package layout

import (
	"math"
	"sort"

	"github.com/piwi3910/BeamCut/internal/angle"
	"github.com/piwi3910/BeamCut/internal/model"
)

// BoundaryKind classifies the line between two adjacent segments.
type BoundaryKind int

const (
	SharedStraight BoundaryKind = iota // Both ends square, one straight cut
	SharedMiter                        // One shared angled cut line
	Separate                           // Two independent cut marks
)

func (k BoundaryKind) String() string {
	switch k {
	case SharedStraight:
		return "SharedStraight"
	case SharedMiter:
		return "SharedMiter"
	default:
		return "Separate"
	}
}

// Side identifies which neighbor owns a shared boundary's angle.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	default:
		return "None"
	}
}

// Boundary is one internal boundary between consecutive segments in
// display order.
type Boundary struct {
	PositionMm        float64
	Kind              BoundaryKind
	Owner             Side
	LeftDeviationDeg  float64
	RightDeviationDeg float64
}

// Segment is one part positioned on the bar in display order.
type Segment struct {
	PartIndex int // index into the pattern's original parts slice
	StartMm   float64
	EndMm     float64
	LengthMm  float64
	Label     string
	Start     angle.EndInfo
	End       angle.EndInfo
}

// Pattern is the computed layout of one stock bar.
type Pattern struct {
	PatternID     string
	StockLengthMm float64
	Segments      []Segment
	Boundaries    []Boundary
	WasteStartMm  float64
	WasteMm       float64
}

// HasWaste reports whether the trailing waste region should be rendered.
func (p Pattern) HasWaste() bool {
	return p.WasteMm > 0
}

// Config controls boundary classification.
type Config struct {
	// Maximum deviation difference in degrees for two miters to share a cut
	MiterMatchToleranceDeg float64

	// Render mixed or out-of-tolerance boundaries as two independent cut
	// marks instead of one shared line
	SplitDivergentBoundaries bool
}

// DefaultConfig returns the classification defaults: 2° miter match
// tolerance, every internal boundary rendered as a single shared line.
func DefaultConfig() Config {
	return Config{
		MiterMatchToleranceDeg:   2.0,
		SplitDivergentBoundaries: false,
	}
}

// FromAppConfig builds a layout Config from saved application preferences.
func FromAppConfig(cfg model.AppConfig) Config {
	c := DefaultConfig()
	if cfg.MiterMatchToleranceDeg > 0 {
		c.MiterMatchToleranceDeg = cfg.MiterMatchToleranceDeg
	}
	c.SplitDivergentBoundaries = cfg.SplitDivergentBoundaries
	return c
}

// Build computes the layout for one cutting pattern.
//
// Segments are ordered by length descending, stable on ties, so
// near-identical parts group together on the diagram. This is a display
// ordering only, not the physical cutting sequence. Positions are flush:
// each segment starts where the previous one ends, and the waste region
// occupies the remainder of the bar.
func Build(pattern model.CuttingPattern, cfg Config) Pattern {
	out := Pattern{
		PatternID:     pattern.ID,
		StockLengthMm: pattern.StockLengthMm,
	}

	order := make([]int, len(pattern.Parts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pattern.Parts[order[a]].LengthMm > pattern.Parts[order[b]].LengthMm
	})

	cursor := 0.0
	out.Segments = make([]Segment, 0, len(order))
	for _, idx := range order {
		part := pattern.Parts[idx]
		seg := Segment{
			PartIndex: idx,
			StartMm:   cursor,
			EndMm:     cursor + part.LengthMm,
			LengthMm:  part.LengthMm,
			Label:     part.Reference(),
			Start:     endInfo(part.StartEnd()),
			End:       endInfo(part.EndEnd()),
		}
		out.Segments = append(out.Segments, seg)
		cursor = seg.EndMm
	}

	out.Boundaries = make([]Boundary, 0, maxInt(0, len(out.Segments)-1))
	for i := 0; i+1 < len(out.Segments); i++ {
		left := out.Segments[i].End
		right := out.Segments[i+1].Start
		b := classifyBoundary(left, right, cfg)
		b.PositionMm = out.Segments[i].EndMm
		out.Boundaries = append(out.Boundaries, b)
	}

	out.WasteStartMm = cursor
	out.WasteMm = pattern.StockLengthMm - cursor
	if out.WasteMm < 0 {
		out.WasteMm = 0
	}
	return out
}

// endInfo classifies one end-cut descriptor.
func endInfo(e model.EndCut) angle.EndInfo {
	return angle.ClassifyEnd(e.HasSlope, e.RawAngle)
}

// classifyBoundary decides how the line between two facing ends renders.
func classifyBoundary(left, right angle.EndInfo, cfg Config) Boundary {
	b := Boundary{
		LeftDeviationDeg:  left.DeviationDeg,
		RightDeviationDeg: right.DeviationDeg,
	}

	switch {
	case left.Type == angle.Straight && right.Type == angle.Straight:
		b.Kind = SharedStraight
		b.Owner = SideNone

	case left.Type == angle.Miter && right.Type == angle.Miter:
		diff := math.Abs(left.DeviationDeg - right.DeviationDeg)
		if diff <= cfg.MiterMatchToleranceDeg {
			b.Kind = SharedMiter
			// The steeper bevel owns the cut line; ties go left.
			if right.DeviationDeg > left.DeviationDeg {
				b.Owner = SideRight
			} else {
				b.Owner = SideLeft
			}
		} else {
			b.Kind = divergentKind(cfg)
			b.Owner = SideLeft
		}

	case left.Type == angle.Miter:
		b.Kind = divergentKind(cfg)
		b.Owner = SideLeft

	default: // right is the miter
		b.Kind = divergentKind(cfg)
		b.Owner = SideRight
	}
	return b
}

func divergentKind(cfg Config) BoundaryKind {
	if cfg.SplitDivergentBoundaries {
		return Separate
	}
	return SharedMiter
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
