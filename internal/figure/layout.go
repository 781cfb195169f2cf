package figure

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// gridSpec tiles a canvas into rows and columns of relative size and lines
// up the data areas of the plots placed in it: plots in the same column
// share a horizontal data extent, plots in the same row a vertical one.
// It generalises plot.Align to unequal row heights and column widths.
type gridSpec struct {
	Heights []float64 // top to bottom
	Widths  []float64 // left to right
	Pad     vg.Length
}

type margins struct {
	left, right, bottom, top vg.Length
}

// layout returns one canvas per cell of plots (row-major, top row first).
// A nil plot yields the bare cell, suitable for a spacer.
func (g gridSpec) layout(plots [][]*plot.Plot, dc draw.Canvas) ([][]draw.Canvas, error) {
	rows, cols := len(g.Heights), len(g.Widths)
	if len(plots) != rows {
		return nil, fmt.Errorf("layout: %d plot rows for %d grid rows", len(plots), rows)
	}
	for i, row := range plots {
		if len(row) != cols {
			return nil, fmt.Errorf("layout: row %d has %d plots for %d grid columns", i, len(row), cols)
		}
	}

	// Measure each plot's decoration margins on a first-pass tiling.
	first := g.cells(dc, make([]margins, cols), make([]margins, rows))
	own := make([][]margins, rows)
	colM := make([]margins, cols)
	rowM := make([]margins, rows)
	for i, row := range plots {
		own[i] = make([]margins, cols)
		for j, p := range row {
			if p == nil {
				continue
			}
			tile := first[i][j]
			data := p.DataCanvas(tile)
			m := margins{
				left:   data.Min.X - tile.Min.X,
				right:  tile.Max.X - data.Max.X,
				bottom: data.Min.Y - tile.Min.Y,
				top:    tile.Max.Y - data.Max.Y,
			}
			own[i][j] = m
			colM[j].left = max(colM[j].left, m.left)
			colM[j].right = max(colM[j].right, m.right)
			rowM[i].bottom = max(rowM[i].bottom, m.bottom)
			rowM[i].top = max(rowM[i].top, m.top)
		}
	}

	data := g.cells(dc, colM, rowM)
	out := make([][]draw.Canvas, rows)
	for i, row := range plots {
		out[i] = make([]draw.Canvas, cols)
		for j, p := range row {
			d := data[i][j]
			m := own[i][j]
			if p == nil {
				m = margins{left: colM[j].left, right: colM[j].right, bottom: rowM[i].bottom, top: rowM[i].top}
			}
			out[i][j] = draw.Canvas{
				Canvas: dc.Canvas,
				Rectangle: vg.Rectangle{
					Min: vg.Point{X: d.Min.X - m.left, Y: d.Min.Y - m.bottom},
					Max: vg.Point{X: d.Max.X + m.right, Y: d.Max.Y + m.top},
				},
			}
		}
	}
	return out, nil
}

// cells splits dc into data rectangles after reserving the given per-column
// and per-row margins, distributing the remaining space by ratio.
func (g gridSpec) cells(dc draw.Canvas, colM, rowM []margins) [][]draw.Canvas {
	var reservedX, reservedY vg.Length
	for _, m := range colM {
		reservedX += m.left + m.right
	}
	for _, m := range rowM {
		reservedY += m.bottom + m.top
	}
	reservedX += g.Pad * vg.Length(len(g.Widths)-1)
	reservedY += g.Pad * vg.Length(len(g.Heights)-1)

	widths := split(dc.Max.X-dc.Min.X-reservedX, g.Widths)
	heights := split(dc.Max.Y-dc.Min.Y-reservedY, g.Heights)

	out := make([][]draw.Canvas, len(heights))
	y := dc.Max.Y
	for i, h := range heights {
		out[i] = make([]draw.Canvas, len(widths))
		y1 := y - rowM[i].top
		y0 := y1 - h
		x := dc.Min.X
		for j, w := range widths {
			x0 := x + colM[j].left
			x1 := x0 + w
			out[i][j] = draw.Canvas{
				Canvas: dc.Canvas,
				Rectangle: vg.Rectangle{
					Min: vg.Point{X: x0, Y: y0},
					Max: vg.Point{X: x1, Y: y1},
				},
			}
			x = x1 + colM[j].right + g.Pad
		}
		y = y0 - rowM[i].bottom - g.Pad
	}
	return out
}

func split(total vg.Length, ratios []float64) []vg.Length {
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	out := make([]vg.Length, len(ratios))
	for i, r := range ratios {
		out[i] = total * vg.Length(r/sum)
	}
	return out
}
