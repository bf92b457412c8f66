package layout

// RenderItem is one segment mapped into an output coordinate space.
// BoundaryBefore and BoundaryAfter are nil at the bar's outer edges.
type RenderItem struct {
	PartIndex      int
	StartCoord     float64
	EndCoord       float64
	Label          string
	BoundaryBefore *Boundary
	BoundaryAfter  *Boundary
}

// RenderModel is the abstract drawing description consumed by both
// presentation surfaces. Coordinates are in the consumer's units; the
// consumer supplies only its drawable width and maps nothing else.
type RenderModel struct {
	Items      []RenderItem
	Boundaries []Boundary // scaled copies, indexed by internal boundary
	WasteStart float64
	WasteEnd   float64
	HasWaste   bool
	Scale      float64
}

// Render maps the layout into a coordinate space of the given width.
// Given identical pattern data and width, the result is identical across
// independent callers.
func (p Pattern) Render(drawableWidth float64) RenderModel {
	m := RenderModel{}
	if p.StockLengthMm > 0 {
		m.Scale = drawableWidth / p.StockLengthMm
	}

	m.Boundaries = make([]Boundary, len(p.Boundaries))
	for i, b := range p.Boundaries {
		scaled := b
		scaled.PositionMm = b.PositionMm * m.Scale
		m.Boundaries[i] = scaled
	}

	m.Items = make([]RenderItem, len(p.Segments))
	for i, seg := range p.Segments {
		item := RenderItem{
			PartIndex:  seg.PartIndex,
			StartCoord: seg.StartMm * m.Scale,
			EndCoord:   seg.EndMm * m.Scale,
			Label:      seg.Label,
		}
		if i > 0 {
			item.BoundaryBefore = &m.Boundaries[i-1]
		}
		if i < len(m.Boundaries) {
			item.BoundaryAfter = &m.Boundaries[i]
		}
		m.Items[i] = item
	}

	if p.HasWaste() {
		m.HasWaste = true
		m.WasteStart = p.WasteStartMm * m.Scale
		m.WasteEnd = p.StockLengthMm * m.Scale
	}
	return m
}
