package figure

import (
	"image/color"
	"math"

	"github.com/banshee-data/consequential-regions/internal/regions"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// rectangles draws every hypothesis as a filled, outlined rectangle.
type rectangles struct {
	hyps []regions.Region

	FillColor color.Color
	draw.LineStyle
}

func newRectangles(hyps []regions.Region) *rectangles {
	return &rectangles{
		hyps:      hyps,
		FillColor: regionFill,
		LineStyle: draw.LineStyle{Color: regionOutline, Width: vg.Points(0.2)},
	}
}

// Plot implements plot.Plotter.
func (r *rectangles) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, h := range r.hyps {
		x0, x1 := trX(h.XMin), trX(h.XMax)
		y0, y1 := trY(h.YMin), trY(h.YMax)
		pts := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		c.FillPolygon(r.FillColor, c.ClipPolygonXY(pts))
		if r.Width > 0 {
			outline := append(pts, pts[0])
			c.StrokeLines(r.LineStyle, c.ClipLinesXY(outline)...)
		}
	}
}

// DataRange implements plot.DataRanger.
func (r *rectangles) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, h := range r.hyps {
		xmin = math.Min(xmin, h.XMin)
		xmax = math.Max(xmax, h.XMax)
		ymin = math.Min(ymin, h.YMin)
		ymax = math.Max(ymax, h.YMax)
	}
	return xmin, xmax, ymin, ymax
}

// callout is an annotation arrow from a text label to a target, both in
// data coordinates.
type callout struct {
	Text   string
	Label  plotter.XY
	Target plotter.XY
}

// callouts draws labelled arrows. The label sits above the arrow tail when
// the target is below it, and below the tail otherwise.
type callouts struct {
	items []callout

	draw.LineStyle
	TextStyle text.Style
	HeadLen   vg.Length
	Gap       vg.Length // space left between the arrow head and the target
}

func newCallouts(items []callout) *callouts {
	return &callouts{
		items:     items,
		LineStyle: draw.LineStyle{Color: color.Black, Width: vg.Points(0.75)},
		TextStyle: text.Style{
			Color:   color.Black,
			Font:    calloutFont,
			XAlign:  draw.XCenter,
			Handler: plot.DefaultTextHandler,
		},
		HeadLen: vg.Points(5),
		Gap:     vg.Points(3),
	}
}

// Plot implements plot.Plotter.
func (a *callouts) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, it := range a.items {
		tail := vg.Point{X: trX(it.Label.X), Y: trY(it.Label.Y)}
		head := vg.Point{X: trX(it.Target.X), Y: trY(it.Target.Y)}

		dx, dy := float64(head.X-tail.X), float64(head.Y-tail.Y)
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			continue
		}
		ux, uy := dx/dist, dy/dist
		head = vg.Point{
			X: head.X - a.Gap*vg.Length(ux),
			Y: head.Y - a.Gap*vg.Length(uy),
		}
		c.StrokeLines(a.LineStyle, []vg.Point{tail, head})

		// Two barbs at ±25° from the shaft.
		const barb = 25 * math.Pi / 180
		for _, s := range []float64{-1, 1} {
			ang := math.Atan2(-uy, -ux) + s*barb
			end := vg.Point{
				X: head.X + a.HeadLen*vg.Length(math.Cos(ang)),
				Y: head.Y + a.HeadLen*vg.Length(math.Sin(ang)),
			}
			c.StrokeLines(a.LineStyle, []vg.Point{head, end})
		}

		sty := a.TextStyle
		if uy < 0 {
			sty.YAlign = draw.YBottom
		} else {
			sty.YAlign = draw.YTop
		}
		c.FillText(sty, tail, it.Text)
	}
}
