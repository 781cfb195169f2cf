package figure

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/banshee-data/consequential-regions/internal/config"
	"github.com/banshee-data/consequential-regions/internal/monitoring"
	"github.com/banshee-data/consequential-regions/internal/regions"
	"github.com/banshee-data/consequential-regions/internal/simulation"
	"github.com/banshee-data/consequential-regions/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func init() {
	monitoring.SetLogger(nil)
}

var (
	resultOnce sync.Once
	result     *simulation.Result
	resultErr  error
)

// smallResult runs a reduced simulation once and shares it between tests.
func smallResult(t *testing.T) *simulation.Result {
	t.Helper()
	resultOnce.Do(func() {
		p := simulation.ParamsFromConfig(config.EmptySimConfig())
		p.Samples = 2000
		p.GridPoints = 200
		result, resultErr = simulation.Run(p)
	})
	require.NoError(t, resultErr)
	return result
}

func TestRender_PNGSize(t *testing.T) {
	c, err := Render(smallResult(t), DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	testutil.AssertPNGSize(t, buf.Bytes(), 576, 576)
}

func TestRender_VectorFormats(t *testing.T) {
	tests := []struct {
		format string
		prefix string
	}{
		{"svg", "<?xml"},
		{"pdf", "%PDF"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			opt := DefaultOptions()
			opt.Format = tt.format
			c, err := Render(smallResult(t), opt)
			require.NoError(t, err)

			var buf bytes.Buffer
			_, err = c.WriteTo(&buf)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(buf.String(), tt.prefix), "output starts with %q", buf.String()[:min(16, buf.Len())])
		})
	}
}

func TestRender_EmptyPosterior(t *testing.T) {
	p := simulation.ParamsFromConfig(config.EmptySimConfig())
	p.Samples = 100
	p.GridPoints = 50
	p.Observation = regions.Point{X: 100, Y: 100}
	res, err := simulation.Run(p)
	require.NoError(t, err)
	require.Empty(t, res.Hypotheses)

	c, err := Render(res, DefaultOptions())
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = c.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestRender_InvalidOptions(t *testing.T) {
	res := smallResult(t)

	opt := DefaultOptions()
	opt.Format = "gif"
	_, err := Render(res, opt)
	assert.ErrorContains(t, err, "unsupported format")

	opt = DefaultOptions()
	opt.DPI = 0
	_, err = Render(res, opt)
	assert.Error(t, err)

	opt = DefaultOptions()
	opt.Width = 0
	_, err = Render(res, opt)
	assert.Error(t, err)
}

func TestNewPanels_InvalidRange(t *testing.T) {
	res := *smallResult(t)
	res.Params.Prior.Range = 0
	_, err := NewPanels(&res)
	assert.Error(t, err)
}

func TestPanels_Aligned(t *testing.T) {
	panels, err := NewPanels(smallResult(t))
	require.NoError(t, err)

	c := vgimg.NewWith(vgimg.UseWH(6*vg.Inch, 6*vg.Inch), vgimg.UseDPI(96))
	cells, err := layoutSpec.layout([][]*plot.Plot{
		{panels.Top, nil},
		{panels.Main, panels.Right},
	}, draw.New(c))
	require.NoError(t, err)

	top := panels.Top.DataCanvas(cells[0][0])
	main := panels.Main.DataCanvas(cells[1][0])
	right := panels.Right.DataCanvas(cells[1][1])

	const tol = 1e-6
	assert.InDelta(t, float64(main.Min.X), float64(top.Min.X), tol, "top and main share the x extent")
	assert.InDelta(t, float64(main.Max.X), float64(top.Max.X), tol)
	assert.InDelta(t, float64(main.Min.Y), float64(right.Min.Y), tol, "main and right share the y extent")
	assert.InDelta(t, float64(main.Max.Y), float64(right.Max.Y), tol)

	// Main data area is wider than the right marginal and taller than the top one.
	mainW, mainH := main.Max.X-main.Min.X, main.Max.Y-main.Min.Y
	rightW := right.Max.X - right.Min.X
	topH := top.Max.Y - top.Min.Y
	assert.Greater(t, float64(mainW), float64(rightW))
	assert.Greater(t, float64(mainH), float64(topH))
	assert.Greater(t, float64(top.Min.Y), float64(main.Max.Y), "top panel sits above main")
	assert.Greater(t, float64(right.Min.X), float64(main.Max.X), "right panel sits beside main")
}

func TestPanels_AxesPinned(t *testing.T) {
	res := smallResult(t)
	panels, err := NewPanels(res)
	require.NoError(t, err)

	r := res.Range()
	for name, a := range map[string]plot.Axis{
		"main x":  panels.Main.X,
		"main y":  panels.Main.Y,
		"top x":   panels.Top.X,
		"right y": panels.Right.Y,
	} {
		assert.Equal(t, -r, a.Min, name)
		assert.Equal(t, r, a.Max, name)
	}
	for name, a := range map[string]plot.Axis{
		"top y":   panels.Top.Y,
		"right x": panels.Right.X,
	} {
		assert.Equal(t, 0.0, a.Min, name)
		assert.Equal(t, 1.0, a.Max, name)
	}
	assert.Equal(t, "p(x)", panels.Top.Y.Label.Text)
	assert.Equal(t, "p(y)", panels.Right.X.Label.Text)
}

func TestGridSpec_Mismatch(t *testing.T) {
	c := vgimg.New(vg.Inch, vg.Inch)
	_, err := layoutSpec.layout([][]*plot.Plot{{nil, nil}}, draw.New(c))
	assert.Error(t, err)

	_, err = layoutSpec.layout([][]*plot.Plot{{nil}, {nil, nil}}, draw.New(c))
	assert.Error(t, err)
}

func TestGridSpec_EmptyCellsSplitByRatio(t *testing.T) {
	c := vgimg.New(3*vg.Inch, 3*vg.Inch)
	g := gridSpec{Heights: []float64{1, 2}, Widths: []float64{2, 1}}
	cells, err := g.layout([][]*plot.Plot{{nil, nil}, {nil, nil}}, draw.New(c))
	require.NoError(t, err)

	assert.InDelta(t, float64(2*vg.Inch), float64(cells[1][0].Max.X-cells[1][0].Min.X), 1e-9)
	assert.InDelta(t, float64(vg.Inch), float64(cells[1][1].Max.X-cells[1][1].Min.X), 1e-9)
	assert.InDelta(t, float64(vg.Inch), float64(cells[0][0].Max.Y-cells[0][0].Min.Y), 1e-9)
	assert.InDelta(t, float64(2*vg.Inch), float64(cells[1][0].Max.Y-cells[1][0].Min.Y), 1e-9)
}

func TestFixedCallouts_InsideRange(t *testing.T) {
	for _, r := range []float64{1, 7.5, 100} {
		for _, c := range fixedCallouts(r) {
			for _, v := range []float64{c.Label.X, c.Label.Y, c.Target.X, c.Target.Y} {
				assert.LessOrEqual(t, v, r)
				assert.GreaterOrEqual(t, v, -r)
			}
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"figures/consequential_regions.png": "png",
		"out.SVG":                           "svg",
		"a/b/c.pdf":                         "pdf",
		"plot.JPEG":                         "jpeg",
		"noext":                             "png",
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestNewCanvas_AllFormats(t *testing.T) {
	for _, f := range Formats {
		opt := DefaultOptions()
		opt.Format = f
		c, err := NewCanvas(opt)
		require.NoError(t, err, f)
		w, h := c.Size()
		assert.Equal(t, 6*vg.Inch, w, f)
		assert.Equal(t, 6*vg.Inch, h, f)
	}
}

func TestRenderHTML(t *testing.T) {
	buf, err := RenderHTML(smallResult(t))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "Consequential regions")
	assert.Contains(t, out, "Retained region centres")
}
