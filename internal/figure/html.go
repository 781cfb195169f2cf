package figure

import (
	"bytes"
	"fmt"

	"github.com/banshee-data/consequential-regions/internal/gradient"
	"github.com/banshee-data/consequential-regions/internal/simulation"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// maxHTMLCenters caps the scatter of retained region centres in the HTML
// companion; larger posteriors are strided down.
const maxHTMLCenters = 5000

// RenderHTML renders an interactive companion page for res: both gradients
// as area charts and a scatter of retained region centres.
func RenderHTML(res *simulation.Result) (*bytes.Buffer, error) {
	r := res.Range()
	subtitle := res.Summary.String()

	page := components.NewPage()
	page.SetPageTitle("Consequential regions")
	page.AddCharts(
		gradientChart("Generalization gradient along dimension 1", "p(x)", subtitle, res.PX, r),
		gradientChart("Generalization gradient along dimension 2", "p(y)", subtitle, res.PY, r),
		centersChart(res, r),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("figure: render html: %w", err)
	}
	return &buf, nil
}

func gradientChart(title, series, subtitle string, c gradient.Curve, r float64) *charts.Line {
	data := make([]opts.LineData, len(c.Grid))
	for i, v := range c.Grid {
		data[i] = opts.LineData{Value: []interface{}{v, c.P[i]}}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: -r, Max: r, Name: c.Axis.String(), NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: 1, Name: series}),
	)
	line.AddSeries(series, data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.35)}),
	)
	return line
}

func centersChart(res *simulation.Result, r float64) *charts.Scatter {
	stride := 1
	if n := len(res.Hypotheses); n > maxHTMLCenters {
		stride = (n + maxHTMLCenters - 1) / maxHTMLCenters
	}
	pts := make([]opts.ScatterData, 0, len(res.Hypotheses)/stride+1)
	for i := 0; i < len(res.Hypotheses); i += stride {
		h := res.Hypotheses[i]
		pts = append(pts, opts.ScatterData{Value: []interface{}{h.MidX, h.MidY}})
	}
	obs := []opts.ScatterData{{Value: []interface{}{res.Params.Observation.X, res.Params.Observation.Y}}}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Retained region centres", Subtitle: fmt.Sprintf("points=%d stride=%d", len(pts), stride)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -r, Max: r, Name: "Dimension 1", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -r, Max: r, Name: "Dimension 2", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("centres", pts, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#1f77b4", Opacity: opts.Float(0.4)}))
	scatter.AddSeries("observation", obs, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#000000"}))
	return scatter
}
