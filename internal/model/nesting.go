// Package model defines the data structures exchanged with the cutting-stock
// optimizer and the bill-of-materials service, plus invariant checks over them.
package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// LengthToleranceMm is the tolerance used when comparing lengths in mm.
// Stock lengths within this distance are treated as the same length.
const LengthToleranceMm = 0.01

// DefaultMaxStockMm is the longest trade-length bar that can be fabricated.
// Used as a fallback when the report settings carry no stock lengths.
const DefaultMaxStockMm = 12000.0

// EndCut describes one end of a cut segment as reported by the optimizer.
// HasSlope comes from solid geometry inspection and is authoritative.
// RawAngle may be a number, a string with an embedded number, or nil.
type EndCut struct {
	HasSlope bool `json:"has_slope"`
	RawAngle any  `json:"angle"`
}

// PartRef identifies the source element a segment was cut for.
type PartRef struct {
	ProductID    int64   `json:"product_id"`
	ProfileName  string  `json:"profile_name"`
	LengthMm     float64 `json:"length"`
	Reference    string  `json:"reference,omitempty"`
	ElementName  string  `json:"element_name,omitempty"`
	AssemblyMark string  `json:"assembly_mark,omitempty"`
}

// SlopeInfo carries the end-cut data for one segment in the wire format
// produced by the optimizer.
type SlopeInfo struct {
	StartAngle    any  `json:"start_angle"`
	EndAngle      any  `json:"end_angle"`
	StartHasSlope bool `json:"start_has_slope"`
	EndHasSlope   bool `json:"end_has_slope"`
	HasSlope      bool `json:"has_slope"`
}

// CutSegment is one fabricated part placed on a stock bar.
type CutSegment struct {
	Part        PartRef   `json:"part"`
	CutPosition float64   `json:"cut_position"`
	LengthMm    float64   `json:"length"`
	Slope       SlopeInfo `json:"slope_info"`
}

// StartEnd returns the end-cut descriptor for the segment's start.
func (s CutSegment) StartEnd() EndCut {
	return EndCut{HasSlope: s.Slope.StartHasSlope, RawAngle: s.Slope.StartAngle}
}

// EndEnd returns the end-cut descriptor for the segment's end.
func (s CutSegment) EndEnd() EndCut {
	return EndCut{HasSlope: s.Slope.EndHasSlope, RawAngle: s.Slope.EndAngle}
}

// Reference returns the best available identifier for the segment:
// the drawing reference if present, then the element name, then the
// numeric product id.
func (s CutSegment) Reference() string {
	if s.Part.Reference != "" {
		return s.Part.Reference
	}
	if s.Part.ElementName != "" {
		return s.Part.ElementName
	}
	if s.Part.ProductID != 0 {
		return strconv.FormatInt(s.Part.ProductID, 10)
	}
	return "unknown"
}

// CuttingPattern is the set of segments assigned to one stock bar.
// Parts keep the optimizer's original cut order; display ordering is
// computed separately.
type CuttingPattern struct {
	ID              string       `json:"id,omitempty"`
	StockLengthMm   float64      `json:"stock_length"`
	Parts           []CutSegment `json:"parts"`
	WasteMm         float64      `json:"waste"`
	WastePercentage float64      `json:"waste_percentage"`
}

// PartsLengthMm returns the summed length of all segments in the pattern.
func (p CuttingPattern) PartsLengthMm() float64 {
	var total float64
	for _, s := range p.Parts {
		total += s.LengthMm
	}
	return total
}

// InternalCuts returns the number of cuts needed to separate the pattern's
// segments: an n-part bar needs n-1 internal cuts.
func (p CuttingPattern) InternalCuts() int {
	if len(p.Parts) <= 1 {
		return 0
	}
	return len(p.Parts) - 1
}

// RejectedPart is a part the optimizer could not place on any stock bar.
type RejectedPart struct {
	ProductID   any     `json:"product_id"`
	PartID      any     `json:"part_id"`
	Reference   string  `json:"reference,omitempty"`
	ElementName string  `json:"element_name,omitempty"`
	LengthMm    float64 `json:"length"`
	StockLength float64 `json:"stock_length"`
	Reason      string  `json:"reason"`
}

// Label returns the best available identifier for the rejected part.
func (r RejectedPart) Label() string {
	if r.Reference != "" {
		return r.Reference
	}
	if r.ElementName != "" {
		return r.ElementName
	}
	if r.PartID != nil {
		return fmt.Sprintf("%v", r.PartID)
	}
	return "unknown"
}

// StockUsage is one stock length with the number of bars used.
type StockUsage struct {
	LengthMm float64
	Bars     int
}

// ProfileNesting holds all cutting patterns for a single profile.
type ProfileNesting struct {
	ProfileName          string           `json:"profile_name"`
	TotalParts           int              `json:"total_parts"`
	TotalLengthMm        float64          `json:"total_length"`
	StockLengthsUsed     map[string]int   `json:"stock_lengths_used"`
	CuttingPatterns      []CuttingPattern `json:"cutting_patterns"`
	TotalWasteMm         float64          `json:"total_waste"`
	TotalWastePercentage float64          `json:"total_waste_percentage"`
	RejectedParts        []RejectedPart   `json:"rejected_parts,omitempty"`
}

// StockUsage parses the stringified stock-length keys of StockLengthsUsed
// and returns them sorted ascending by length. Unparsable keys are skipped.
func (p ProfileNesting) StockUsage() []StockUsage {
	usage := make([]StockUsage, 0, len(p.StockLengthsUsed))
	for key, bars := range p.StockLengthsUsed {
		length, err := strconv.ParseFloat(key, 64)
		if err != nil {
			continue
		}
		usage = append(usage, StockUsage{LengthMm: length, Bars: bars})
	}
	sort.Slice(usage, func(i, j int) bool {
		return usage[i].LengthMm < usage[j].LengthMm
	})
	return usage
}

// PatternsForStock returns the patterns whose stock length matches the given
// length within LengthToleranceMm.
func (p ProfileNesting) PatternsForStock(lengthMm float64) []CuttingPattern {
	var matched []CuttingPattern
	for _, pattern := range p.CuttingPatterns {
		if math.Abs(pattern.StockLengthMm-lengthMm) < LengthToleranceMm {
			matched = append(matched, pattern)
		}
	}
	return matched
}

// ReportSummary is the optimizer's own rollup over all profiles. The
// average waste percentage here is length-weighted by the optimizer and is
// reproduced as-is, never recomputed from row-level means.
type ReportSummary struct {
	TotalProfiles          int     `json:"total_profiles"`
	TotalParts             int     `json:"total_parts"`
	TotalStockBars         int     `json:"total_stock_bars"`
	TotalWasteMm           float64 `json:"total_waste"`
	AverageWastePercentage float64 `json:"average_waste_percentage"`
}

// ReportSettings carries the optimizer settings echoed back in the report.
type ReportSettings struct {
	StockLengths []float64 `json:"stock_lengths"`
}

// NestingReport is the full optimizer response for one uploaded model file.
type NestingReport struct {
	Filename string           `json:"filename"`
	Profiles []ProfileNesting `json:"profiles"`
	Summary  ReportSummary    `json:"summary"`
	Settings ReportSettings   `json:"settings"`
}

// LongestStockMm returns the longest stock length in the report settings.
// When the settings carry none it falls back to the longest of the given
// default lengths, then to DefaultMaxStockMm.
func (r NestingReport) LongestStockMm(defaultLengths []float64) float64 {
	longest := 0.0
	for _, l := range r.Settings.StockLengths {
		if l > longest {
			longest = l
		}
	}
	if longest <= 0 {
		for _, l := range defaultLengths {
			if l > longest {
				longest = l
			}
		}
	}
	if longest <= 0 {
		return DefaultMaxStockMm
	}
	return longest
}

// AssignPatternIDs gives every cutting pattern a short stable ID if it does
// not already have one. IDs are used on printed bar labels.
func (r *NestingReport) AssignPatternIDs() {
	for pi := range r.Profiles {
		for ci := range r.Profiles[pi].CuttingPatterns {
			if r.Profiles[pi].CuttingPatterns[ci].ID == "" {
				r.Profiles[pi].CuttingPatterns[ci].ID = uuid.New().String()[:8]
			}
		}
	}
}
