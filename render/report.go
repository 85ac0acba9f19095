package render

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/katalvlaran/lvsis/particle"
	"github.com/katalvlaran/lvsis/partition"
	"github.com/katalvlaran/lvsis/volatility"
)

// AssetsHost is where the generated HTML loads the echarts scripts from.
var AssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Report writes an interactive HTML page to w. It holds one chart for the
// partition-function estimates (log axis, with survival rates and distinct
// counts when available) and, when res is non-nil, charts for the latent
// state estimate and the effective sample size per step.
// Either part may be empty, but not both.
func Report(w io.Writer, records []partition.Record, traj volatility.Trajectory, res *particle.Result) error {
	page := components.NewPage()
	page.SetPageTitle("lvsis report")
	page.SetAssetsHost(AssetsHost)

	added := 0
	if len(records) > 0 {
		page.AddCharts(partitionChart(records), survivalChart(records))
		added++
	}
	if res != nil && res.Steps() > 0 {
		if traj.Len() != res.Steps() {
			return fmt.Errorf("%w: %d vs %d", ErrMismatch, traj.Len(), res.Steps())
		}
		page.AddCharts(latentChart(traj, res), essChart(res))
		added++
	}
	if added == 0 {
		return ErrNoData
	}
	return page.Render(w)
}

func initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle:  title,
		Width:      "1000px",
		Height:     "450px",
		AssetsHost: AssetsHost,
	})
}

func partitionChart(records []partition.Record) *charts.Line {
	x := make([]string, len(records))
	est := make([]opts.LineData, len(records))
	distinct := make([]opts.LineData, len(records))
	for i, r := range records {
		x[i] = strconv.Itoa(r.Length)
		// zero has no place on a log axis; leave the point empty
		if r.ZHat > 0 {
			est[i] = opts.LineData{Value: finiteOrNil(r.ZHat)}
		}
		if r.HasDistinct && r.DistinctObserved > 0 {
			distinct[i] = opts.LineData{Value: r.DistinctObserved}
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("Partition function"),
		charts.WithTitleOpts(opts.Title{Title: "Estimated Z_T", Subtitle: fmt.Sprintf("policy=%s draws=%d", records[0].Policy, records[0].Attempts)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "T", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Z_T", Type: "log"}),
	)
	line.SetXAxis(x).
		AddSeries("SIS estimate", est).
		AddSeries("distinct observed", distinct,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}),
		)
	return line
}

func survivalChart(records []partition.Record) *charts.Line {
	x := make([]string, len(records))
	surv := make([]opts.LineData, len(records))
	rse := make([]opts.LineData, len(records))
	for i, r := range records {
		x[i] = strconv.Itoa(r.Length)
		surv[i] = opts.LineData{Value: r.SurvivalRate()}
		rse[i] = opts.LineData{Value: finiteOrNil(r.RelStdErr)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("Walk diagnostics"),
		charts.WithTitleOpts(opts.Title{Title: "Survival rate and relative standard error"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "T", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0}),
	)
	line.SetXAxis(x).
		AddSeries("survival rate", surv).
		AddSeries("relative std. error", rse)
	return line
}

func latentChart(traj volatility.Trajectory, res *particle.Result) *charts.Line {
	T := res.Steps()
	x := make([]int, T)
	truth := make([]opts.LineData, T)
	est := make([]opts.LineData, T)
	obs := make([]opts.LineData, T)
	for t := 0; t < T; t++ {
		x[t] = t
		truth[t] = opts.LineData{Value: traj.X[t]}
		est[t] = opts.LineData{Value: res.XHat[t]}
		obs[t] = opts.LineData{Value: traj.Y[t]}
	}
	_, n := res.X.Dims()

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("Filter"),
		charts.WithTitleOpts(opts.Title{Title: "Latent state", Subtitle: fmt.Sprintf("particles=%d steps=%d", n, T)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t", NameLocation: "middle", NameGap: 25}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(x).
		AddSeries("true x", truth).
		AddSeries("estimate", est).
		AddSeries("observation y", obs, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}

func essChart(res *particle.Result) *charts.Line {
	T := res.Steps()
	x := make([]int, T)
	ess := make([]opts.LineData, T)
	for t := 0; t < T; t++ {
		x[t] = t
		ess[t] = opts.LineData{Value: res.ESS[t]}
	}
	_, n := res.X.Dims()

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("Effective sample size"),
		charts.WithTitleOpts(opts.Title{Title: "Effective sample size", Subtitle: fmt.Sprintf("resampled %d times", len(res.Resampled))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: n}),
	)
	line.SetXAxis(x).AddSeries("ESS", ess, charts.WithLineChartOpts(opts.LineChart{Step: true}))
	return line
}

// finiteOrNil keeps NaN and ±Inf out of the JSON payload.
func finiteOrNil(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
