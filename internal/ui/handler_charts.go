package ui

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/thep200/github-sourcer/internal/sourcing"
	"github.com/thep200/github-sourcer/internal/velocity"
)

// The tier palette matches the badge colors of the page style.
func tierColor(t velocity.Tier) string {
	switch t {
	case velocity.TierBreakout:
		return "#DC2626"
	case velocity.TierBreakoutHuge:
		return "#991B1B"
	case velocity.TierGrowing:
		return "#2563EB"
	default:
		return "#16A34A"
	}
}

// report resolves the chart's underlying data. Charts read through the same
// report cache as the results route and never trigger star-history refetches
// of their own once a scan ran.
func (h *Handler) report(w http.ResponseWriter, r *http.Request) (*sourcing.Report, bool) {
	report, err := h.Api.Results(r.Context(), h.scanRequest(r))
	if err != nil {
		h.writeScanError(w, r, err)
		return nil, false
	}
	return report, true
}

// getVelocityChart renders the top-10 velocity leaders as a horizontal bar
// chart, bars colored per tier.
func (h *Handler) getVelocityChart(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}

	top := report.Records
	if len(top) > 10 {
		top = top[:10]
	}

	// Reverse so the fastest repository sits at the top after XY reversal.
	names := make([]string, 0, len(top))
	bars := make([]opts.BarData, 0, len(top))
	for i := len(top) - 1; i >= 0; i-- {
		rec := top[i]
		names = append(names, rec.Name)
		bars = append(bars, opts.BarData{
			Value:     rec.Velocity,
			ItemStyle: &opts.ItemStyle{Color: tierColor(rec.Tier)},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Velocity Leaders", Width: "100%"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Velocity Leaders",
			Subtitle: fmt.Sprintf("Stars gained in the last %d days, topic %s", report.LookbackDays, report.Topic),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).AddSeries("stars gained", bars)
	bar.XYReversal()

	h.renderChart(w, r, bar.Render)
}

// getDistributionChart renders the tier distribution as a donut.
func (h *Handler) getDistributionChart(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}

	counts := map[velocity.Tier]int{}
	for _, rec := range report.Records {
		counts[rec.Tier]++
	}

	order := []velocity.Tier{
		velocity.TierBreakout,
		velocity.TierBreakoutHuge,
		velocity.TierGrowing,
		velocity.TierEarly,
	}
	items := make([]opts.PieData, 0, len(order))
	for _, tier := range order {
		if counts[tier] == 0 {
			continue
		}
		items = append(items, opts.PieData{
			Name:      string(tier),
			Value:     counts[tier],
			ItemStyle: &opts.ItemStyle{Color: tierColor(tier)},
		})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Tier Distribution", Width: "100%"}),
		charts.WithTitleOpts(opts.Title{Title: "Tier Distribution"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("tiers", items).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
	)

	h.renderChart(w, r, pie.Render)
}

// getGrowthChart renders the growth distribution: total stars (log x) against
// measured velocity (y), one point per repository.
func (h *Handler) getGrowthChart(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}

	points := make([]opts.ScatterData, 0, len(report.Records))
	for _, rec := range report.Records {
		stars := rec.Stars
		if stars < 1 {
			// log axis cannot place zero
			stars = 1
		}
		points = append(points, opts.ScatterData{
			Name:       rec.Name,
			Value:      []interface{}{stars, rec.Velocity},
			Symbol:     "circle",
			SymbolSize: 10,
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Growth Distribution", Width: "100%"}),
		charts.WithTitleOpts(opts.Title{Title: "Growth Distribution"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "log", Name: "Total stars"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Velocity"}),
	)
	scatter.AddSeries("repositories", points)

	h.renderChart(w, r, scatter.Render)
}

func (h *Handler) renderChart(w http.ResponseWriter, r *http.Request, render func(w io.Writer) error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(w); err != nil {
		h.Logger.Error(r.Context(), "Failed to render chart: %v", err)
	}
}
