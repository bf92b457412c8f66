package export

import (
	"fmt"

	"github.com/piwi3910/BeamCut/internal/layout"
	"github.com/piwi3910/BeamCut/internal/report"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names. Bars and cut lines go on separate layers so CAM tools
// can filter them independently.
const (
	dxfLayerBars  = "BARS"
	dxfLayerCuts  = "CUTS"
	dxfLayerWaste = "WASTE"
	dxfLayerText  = "TEXT"
)

// Drawing layout constants, in mm of real bar length. Bars are drawn at
// 1:1 scale and stacked vertically.
const (
	dxfBarHeight  = 150.0
	dxfBarSpacing = 400.0
	dxfTextHeight = 60.0
)

// ExportDXF writes every cutting pattern as a 1:1 line drawing: one
// rectangle per bar, a mark per internal cut, and a hatchless waste box.
func ExportDXF(path string, rep report.Report) error {
	d := dxf.NewDrawing()

	for _, name := range []string{dxfLayerBars, dxfLayerCuts, dxfLayerWaste, dxfLayerText} {
		if _, err := d.AddLayer(name, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", name, err)
		}
	}

	y := 0.0
	drawn := 0
	for _, pr := range rep.Profiles {
		for i, pattern := range pr.Patterns {
			if err := drawBar(d, pattern, pr.Profile.ProfileName, i+1, y); err != nil {
				return err
			}
			y -= dxfBarSpacing
			drawn++
		}
	}

	if drawn == 0 {
		return fmt.Errorf("no cutting patterns to export")
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// drawBar draws one stock bar at vertical offset y.
func drawBar(d *drawing.Drawing, pattern layout.Pattern, profileName string, barNum int, y float64) error {
	if err := d.ChangeLayer(dxfLayerBars); err != nil {
		return err
	}
	if err := drawRect(d, 0, y, pattern.StockLengthMm, dxfBarHeight); err != nil {
		return err
	}

	if err := d.ChangeLayer(dxfLayerCuts); err != nil {
		return err
	}
	for _, b := range pattern.Boundaries {
		if err := drawCutMark(d, b, y); err != nil {
			return err
		}
	}

	if pattern.HasWaste() {
		if err := d.ChangeLayer(dxfLayerWaste); err != nil {
			return err
		}
		// Diagonal through the waste region marks it as offcut
		if _, err := d.Line(pattern.WasteStartMm, y, 0, pattern.StockLengthMm, y+dxfBarHeight, 0); err != nil {
			return err
		}
		if _, err := d.Line(pattern.WasteStartMm, y+dxfBarHeight, 0, pattern.StockLengthMm, y, 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(dxfLayerText); err != nil {
		return err
	}
	caption := fmt.Sprintf("%s bar %d - %.0f mm", profileName, barNum, pattern.StockLengthMm)
	if _, err := d.Text(caption, 0, y+dxfBarHeight+30, 0, dxfTextHeight); err != nil {
		return err
	}
	for _, seg := range pattern.Segments {
		if seg.LengthMm < dxfTextHeight*2 {
			continue
		}
		label := fmt.Sprintf("%s %.0f", seg.Label, seg.LengthMm)
		if _, err := d.Text(label, seg.StartMm+30, y+dxfBarHeight/2, 0, dxfTextHeight); err != nil {
			return err
		}
	}
	return nil
}

// drawCutMark draws the cut line for one boundary. Shared miters slant
// toward the owning side; separate boundaries get two vertical marks.
func drawCutMark(d *drawing.Drawing, b layout.Boundary, y float64) error {
	const slant = 25.0

	switch b.Kind {
	case layout.SharedStraight:
		_, err := d.Line(b.PositionMm, y, 0, b.PositionMm, y+dxfBarHeight, 0)
		return err
	case layout.SharedMiter:
		offset := slant
		if b.Owner == layout.SideRight {
			offset = -slant
		}
		_, err := d.Line(b.PositionMm-offset/2, y, 0, b.PositionMm+offset/2, y+dxfBarHeight, 0)
		return err
	default: // Separate
		if _, err := d.Line(b.PositionMm-10, y, 0, b.PositionMm-10, y+dxfBarHeight, 0); err != nil {
			return err
		}
		_, err := d.Line(b.PositionMm+10, y, 0, b.PositionMm+10, y+dxfBarHeight, 0)
		return err
	}
}

func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	if _, err := d.Line(x, y, 0, x+w, y, 0); err != nil {
		return err
	}
	if _, err := d.Line(x+w, y, 0, x+w, y+h, 0); err != nil {
		return err
	}
	if _, err := d.Line(x+w, y+h, 0, x, y+h, 0); err != nil {
		return err
	}
	_, err := d.Line(x, y+h, 0, x, y, 0)
	return err
}
