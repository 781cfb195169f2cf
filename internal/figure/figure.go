// Package figure renders the consequential-region figure: a central panel
// of retained hypotheses flanked by the two marginal generalization
// gradients, composed on a single fixed-size canvas.
package figure

import (
	"fmt"
	"image/color"
	"math"

	"github.com/banshee-data/consequential-regions/internal/gradient"
	"github.com/banshee-data/consequential-regions/internal/simulation"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	regionFill    = color.NRGBA{R: 31, G: 119, B: 180, A: 6}
	regionOutline = color.NRGBA{R: 255, G: 255, B: 255, A: 60}
	curveColor    = color.NRGBA{R: 31, G: 119, B: 180, A: 255}
	curveFill     = color.NRGBA{R: 31, G: 119, B: 180, A: 90}

	calloutFont = font.From(plot.DefaultFont, vg.Points(9))
)

// Panel proportions: top row 1 : bottom row 2, left column 2 : right column 1.
var layoutSpec = gridSpec{
	Heights: []float64{1, 2},
	Widths:  []float64{2, 1},
	Pad:     vg.Points(4),
}

// Options controls the output canvas.
type Options struct {
	Width, Height vg.Length
	DPI           int    // raster formats only
	Format        string // png, jpg, jpeg, tif, tiff, svg or pdf
}

// DefaultOptions is a 6x6 inch PNG at 96 DPI.
func DefaultOptions() Options {
	return Options{
		Width:  6 * vg.Inch,
		Height: 6 * vg.Inch,
		DPI:    96,
		Format: "png",
	}
}

// Panels holds the three drawn panels; the fourth cell is a blank spacer.
type Panels struct {
	Top   *plot.Plot // px over the x grid
	Main  *plot.Plot // retained regions
	Right *plot.Plot // py over the y grid, rotated
}

// NewPanels builds the panels for a simulation result.
func NewPanels(res *simulation.Result) (*Panels, error) {
	r := res.Range()
	if !(r > 0) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("figure: invalid range %v", r)
	}

	top, err := topMarginal(res.PX, r)
	if err != nil {
		return nil, fmt.Errorf("figure: top marginal: %w", err)
	}
	right, err := rightMarginal(res.PY, r)
	if err != nil {
		return nil, fmt.Errorf("figure: right marginal: %w", err)
	}
	main, err := mainPanel(res, r)
	if err != nil {
		return nil, fmt.Errorf("figure: main panel: %w", err)
	}
	return &Panels{Top: top, Main: main, Right: right}, nil
}

// Draw lays the panels out on dc.
func (p *Panels) Draw(dc draw.Canvas) error {
	cells, err := layoutSpec.layout([][]*plot.Plot{
		{p.Top, nil},
		{p.Main, p.Right},
	}, dc)
	if err != nil {
		return err
	}
	p.Top.Draw(cells[0][0])
	p.Main.Draw(cells[1][0])
	p.Right.Draw(cells[1][1])
	return nil
}

// Render draws the figure for res onto a new canvas of the requested format.
// The returned canvas is ready to be written with WriteTo.
func Render(res *simulation.Result, opt Options) (vg.CanvasWriterTo, error) {
	panels, err := NewPanels(res)
	if err != nil {
		return nil, err
	}
	c, err := NewCanvas(opt)
	if err != nil {
		return nil, err
	}
	if err := panels.Draw(draw.New(c)); err != nil {
		return nil, fmt.Errorf("figure: layout: %w", err)
	}
	return c, nil
}

func mainPanel(res *simulation.Result, r float64) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Dimension 1"
	p.Y.Label.Text = "Dimension 2"
	spatialAxis(&p.X, r)
	spatialAxis(&p.Y, r)

	p.Add(newRectangles(res.Hypotheses))

	obs, err := plotter.NewScatter(plotter.XYs{{X: res.Params.Observation.X, Y: res.Params.Observation.Y}})
	if err != nil {
		return nil, err
	}
	obs.GlyphStyle = draw.GlyphStyle{Color: color.Black, Radius: vg.Points(2.5), Shape: draw.CircleGlyph{}}
	p.Add(obs)

	p.Add(newCallouts(fixedCallouts(r)))

	// Add may widen the axes to fit the data; pin them back.
	pinSpatial(&p.X, r)
	pinSpatial(&p.Y, r)
	return p, nil
}

// fixedCallouts places the two annotations at positions proportional to
// the plotted range.
func fixedCallouts(r float64) []callout {
	return []callout{
		{
			Text:   "observed stimulus",
			Label:  plotter.XY{X: 0.45 * r, Y: -0.6 * r},
			Target: plotter.XY{X: 0, Y: 0},
		},
		{
			Text:   "consequential region",
			Label:  plotter.XY{X: -0.5 * r, Y: 0.8 * r},
			Target: plotter.XY{X: -0.3 * r, Y: 0.35 * r},
		},
	}
}

func topMarginal(px gradient.Curve, r float64) (*plot.Plot, error) {
	p := plot.New()
	p.Y.Label.Text = "p(x)"
	spatialAxis(&p.X, r)
	probabilityAxis(&p.Y)

	line, err := plotter.NewLine(curveXYs(px, false))
	if err != nil {
		return nil, err
	}
	line.Color = curveColor
	line.Width = vg.Points(1)
	line.FillColor = curveFill
	p.Add(line)

	pinSpatial(&p.X, r)
	pinProbability(&p.Y)
	return p, nil
}

func rightMarginal(py gradient.Curve, r float64) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "p(y)"
	probabilityAxis(&p.X)
	spatialAxis(&p.Y, r)

	// plotter.Line fills towards the x axis, so the rotated area is drawn as
	// a polygon closed along p = 0.
	pts := curveXYs(py, true)
	ring := make(plotter.XYs, 0, len(pts)+2)
	if len(pts) > 0 {
		ring = append(ring, plotter.XY{X: 0, Y: pts[0].Y})
		ring = append(ring, pts...)
		ring = append(ring, plotter.XY{X: 0, Y: pts[len(pts)-1].Y})
	}
	area, err := plotter.NewPolygon(ring)
	if err != nil {
		return nil, err
	}
	area.Color = curveFill
	area.LineStyle.Width = 0
	p.Add(area)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = curveColor
	line.Width = vg.Points(1)
	p.Add(line)

	pinProbability(&p.X)
	pinSpatial(&p.Y, r)
	return p, nil
}

// curveXYs converts a curve to plot points; rotated swaps the axes so the
// probability runs horizontally.
func curveXYs(c gradient.Curve, rotated bool) plotter.XYs {
	xys := make(plotter.XYs, len(c.Grid))
	for i, v := range c.Grid {
		if rotated {
			xys[i] = plotter.XY{X: c.P[i], Y: v}
		} else {
			xys[i] = plotter.XY{X: v, Y: c.P[i]}
		}
	}
	return xys
}

// spatialAxis styles a stimulus axis: fixed range, tick marks without labels.
func spatialAxis(a *plot.Axis, r float64) {
	pinSpatial(a, r)
	a.Padding = 0
	ticks := make(plot.ConstantTicks, 0, 7)
	for i := -3; i <= 3; i++ {
		ticks = append(ticks, plot.Tick{Value: float64(i) * r / 3})
	}
	a.Tick.Marker = ticks
}

func probabilityAxis(a *plot.Axis) {
	pinProbability(a)
	a.Padding = 0
	a.Tick.Marker = plot.ConstantTicks{
		{Value: 0, Label: "0"},
		{Value: 0.5, Label: "0.5"},
		{Value: 1, Label: "1"},
	}
}

func pinSpatial(a *plot.Axis, r float64) { a.Min, a.Max = -r, r }

func pinProbability(a *plot.Axis) { a.Min, a.Max = 0, 1 }
