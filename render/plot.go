package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/katalvlaran/lvsis/particle"
	"github.com/katalvlaran/lvsis/partition"
	"github.com/katalvlaran/lvsis/volatility"
)

var (
	// ErrNoData indicates there is nothing to draw.
	ErrNoData = errors.New("render: nothing to draw")
	// ErrMismatch indicates a trajectory and a filter result of different
	// horizons.
	ErrMismatch = errors.New("render: trajectory and filter horizons differ")
)

// Figure sizes.
const (
	partitionWidth  = 8 * vg.Inch
	partitionHeight = 5 * vg.Inch
	filterWidth     = 10 * vg.Inch
	filterHeight    = 14 * vg.Inch
)

// PartitionPNG draws Ẑ_T against T on a logarithmic axis and saves it as a
// PNG. Records whose estimate is not positive (no surviving draw) cannot be
// placed on a log axis and are left out. Distinct-observed counts, when
// present, are overlaid as separate markers.
func PartitionPNG(records []partition.Record, path string) error {
	est := make(plotter.XYs, 0, len(records))
	distinct := make(plotter.XYs, 0, len(records))
	for _, r := range records {
		if r.ZHat > 0 && !math.IsInf(r.ZHat, 0) {
			est = append(est, plotter.XY{X: float64(r.Length), Y: r.ZHat})
		}
		if r.HasDistinct && r.DistinctObserved > 0 {
			distinct = append(distinct, plotter.XY{X: float64(r.Length), Y: float64(r.DistinctObserved)})
		}
	}
	if len(est) == 0 {
		return fmt.Errorf("%w: no positive estimate among %d records", ErrNoData, len(records))
	}

	p := plot.New()
	p.Title.Text = "Self-avoiding walks: estimated Z_T"
	p.X.Label.Text = "T (positions)"
	p.Y.Label.Text = "Z_T"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(est)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(0)
	line.Width = vg.Points(1)
	points.Color = plotutil.Color(0)
	points.Shape = draw.CircleGlyph{}
	p.Add(line, points)
	p.Legend.Add("SIS estimate", line, points)

	if len(distinct) > 0 {
		sc, err := plotter.NewScatter(distinct)
		if err != nil {
			return err
		}
		sc.Color = plotutil.Color(1)
		sc.Shape = draw.CrossGlyph{}
		sc.Radius = vg.Points(4)
		p.Add(sc)
		p.Legend.Add("distinct observed", sc)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	// one decade of headroom keeps a single point off the log axis origin
	lo, hi := yRange(est, distinct)
	p.Y.Min, p.Y.Max = lo/10, hi*10

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := p.Save(partitionWidth, partitionHeight, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// FilterPNG draws four stacked panels sharing the time axis: observations,
// true versus estimated latent state, the particle cloud, and the particle
// weights. The figure is written to path as a PNG.
func FilterPNG(traj volatility.Trajectory, res *particle.Result, path string) error {
	if res == nil || res.Steps() == 0 || traj.Len() == 0 {
		return ErrNoData
	}
	if traj.Len() != res.Steps() {
		return fmt.Errorf("%w: %d vs %d", ErrMismatch, traj.Len(), res.Steps())
	}
	T := res.Steps()
	_, n := res.X.Dims()

	obs, truth, est := make(plotter.XYs, T), make(plotter.XYs, T), make(plotter.XYs, T)
	cloud, mass := make(plotter.XYs, 0, T*n), make(plotter.XYs, 0, T*n)
	for t := 0; t < T; t++ {
		x := float64(t)
		obs[t] = plotter.XY{X: x, Y: traj.Y[t]}
		truth[t] = plotter.XY{X: x, Y: traj.X[t]}
		est[t] = plotter.XY{X: x, Y: res.XHat[t]}
		for i := 0; i < n; i++ {
			cloud = append(cloud, plotter.XY{X: x, Y: res.X.At(t, i)})
			mass = append(mass, plotter.XY{X: x, Y: res.W.At(t, i)})
		}
	}

	panels := make([]*plot.Plot, 4)
	for i, title := range []string{"Observations y_t", "Latent state x_t", "Particles", "Weights"} {
		panels[i] = plot.New()
		panels[i].Title.Text = title
		panels[i].X.Label.Text = "t"
		panels[i].Add(plotter.NewGrid())
	}

	if err := plotutil.AddLines(panels[0], "y", obs); err != nil {
		return err
	}
	if err := plotutil.AddLines(panels[1], "true", truth, "estimate", est); err != nil {
		return err
	}
	panels[1].Legend.Top = true

	for i, xys := range []plotter.XYs{cloud, mass} {
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		sc.Shape = draw.CircleGlyph{}
		sc.Radius = vg.Points(1.5)
		sc.Color = color.RGBA{R: 30, G: 90, B: 160, A: 90}
		panels[2+i].Add(sc)
	}
	panels[3].Y.Min, panels[3].Y.Max = 0, 1

	img := vgimg.New(filterWidth, filterHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(panels), Cols: 1,
		PadX: vg.Millimeter, PadY: 3 * vg.Millimeter,
		PadTop: vg.Millimeter, PadBottom: vg.Millimeter,
		PadLeft: vg.Millimeter, PadRight: 2 * vg.Millimeter,
	}
	grid := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		grid[i] = []*plot.Plot{p}
	}
	canvases := plot.Align(grid, tiles, dc)
	for i, p := range panels {
		p.Draw(canvases[i][0])
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return f.Close()
}

func yRange(sets ...plotter.XYs) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, xys := range sets {
		for _, xy := range xys {
			lo, hi = math.Min(lo, xy.Y), math.Max(hi, xy.Y)
		}
	}
	return lo, hi
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("render: create %s: %w", dir, err)
	}
	return nil
}
