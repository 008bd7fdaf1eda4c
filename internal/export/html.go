package export

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart is one titled panel of an HTML report.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

func scatter(c Chart) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: c.Title, Theme: "dark", Width: "1000px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: c.XLabel, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: c.YLabel, NameLocation: "middle", NameGap: 40}),
	)
	for _, s := range c.Series {
		data := make([]opts.ScatterData, len(s.Points))
		for i, p := range s.Points {
			data[i] = opts.ScatterData{Value: []interface{}{p.X, p.Y}}
		}
		sc.AddSeries(s.Name, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))
	}
	return sc
}

// WriteHTML renders every chart onto one page.
func WriteHTML(w io.Writer, chartList ...Chart) error {
	if len(chartList) == 0 {
		return fmt.Errorf("no charts to render")
	}
	page := components.NewPage()
	page.PageTitle = chartList[0].Title
	for _, c := range chartList {
		page.AddCharts(scatter(c))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func SaveHTML(path string, chartList ...Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteHTML(f, chartList...)
}
