/*
PURPOSE:
  Renders comparison charts from summary rows: time, speedup, CPU, memory
  and throughput against matrix size, one series per language. Per-run
  time spread is drawn from the raw records as one box-plot panel per size.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli chart
  - Consumes: internal/model.Summary, internal/model.Record
  - Dependencies: gonum.org/v1/plot

IMPLEMENTATION RULES:
  - Summaries for the same (language, size) across batches are averaged.
  - Log-scaled charts drop non-positive points.
*/

package chart

import (
	"cmp"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/daryltucker/matbench/internal/model"
)

// LanguageOrder fixes series order; other languages follow alphabetically.
var LanguageOrder = []string{"Python", "Java", "C", "Go"}

// Colors maps a language tag to its series color: the CSS named colors
// blue, orange and purple, plus teal for Go.
var Colors = map[string]color.Color{
	"Python": color.RGBA{R: 0, G: 0, B: 255, A: 255},
	"Java":   color.RGBA{R: 255, G: 165, B: 0, A: 255},
	"C":      color.RGBA{R: 128, G: 0, B: 128, A: 255},
	"Go":     color.RGBA{R: 0, G: 128, B: 128, A: 255},
}

// BoxPlotFile is the per-size time distribution chart written by Render.
const BoxPlotFile = "boxplots_time_by_size.png"

func colorFor(lang string) color.Color {
	if c, ok := Colors[lang]; ok {
		return c
	}
	return fallbackColor
}

var fallbackColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}

// Spec describes one chart.
type Spec struct {
	File   string
	Title  string
	YLabel string
	LogLog bool
	// ErrorBars draws the min..max time range around each point.
	ErrorBars bool
	// Relative divides the smallest value at each size by every
	// language's value, so the fastest reads 1.
	Relative bool
	Value    func(model.Summary) float64
}

// GFLOPS is the throughput of one n x n multiplication: 2n^3 flops.
func GFLOPS(s model.Summary) float64 {
	if s.AvgTimeMS <= 0 {
		return 0
	}
	n := float64(s.Size)
	return 2 * n * n * n / (s.AvgTimeMS * 1e6)
}

// Charts is the default suite written by Render.
var Charts = []Spec{
	{File: "time_vs_size.png", Title: "Execution time vs matrix size", YLabel: "Average time (ms)", ErrorBars: true,
		Value: func(s model.Summary) float64 { return s.AvgTimeMS }},
	{File: "time_vs_size_loglog.png", Title: "Execution time vs matrix size (log-log)", YLabel: "Average time (ms)", LogLog: true,
		Value: func(s model.Summary) float64 { return s.AvgTimeMS }},
	{File: "speedup_vs_fastest.png", Title: "Speedup vs fastest (per size)", YLabel: "Speedup (x fastest)", Relative: true,
		Value: func(s model.Summary) float64 { return s.AvgTimeMS }},
	{File: "cpu_vs_size.png", Title: "CPU utilization vs matrix size", YLabel: "Average CPU (%)",
		Value: func(s model.Summary) float64 { return s.CPUPctAvg }},
	{File: "mem_vs_size.png", Title: "Peak memory vs matrix size", YLabel: "Peak RSS (MiB)",
		Value: func(s model.Summary) float64 { return s.PeakMiB }},
	{File: "efficiency_gflops.png", Title: "Throughput vs matrix size", YLabel: "GFLOP/s",
		Value: GFLOPS},
}

// Point is one (size, value) sample with the time range seen at that size.
type Point struct {
	Size   int
	Y      float64
	Lo, Hi float64
}

// Series reduces summaries to per-language points ordered by size.
func Series(summaries []model.Summary, value func(model.Summary) float64) map[string][]Point {
	type key struct {
		lang string
		size int
	}
	sums := make(map[key]*Point)
	counts := make(map[key]int)
	for _, s := range summaries {
		k := key{s.Language, s.Size}
		p, ok := sums[k]
		if !ok {
			p = &Point{Size: s.Size, Lo: s.MinTimeMS, Hi: s.MaxTimeMS}
			sums[k] = p
		}
		p.Y += value(s)
		p.Lo = min(p.Lo, s.MinTimeMS)
		p.Hi = max(p.Hi, s.MaxTimeMS)
		counts[k]++
	}

	out := make(map[string][]Point)
	for k, p := range sums {
		p.Y /= float64(counts[k])
		out[k.lang] = append(out[k.lang], *p)
	}
	for lang := range out {
		slices.SortFunc(out[lang], func(a, b Point) int { return cmp.Compare(a.Size, b.Size) })
	}
	return out
}

// Speedup rewrites each point as fastest/own, where fastest is the
// smallest positive value any language has at that size.
func Speedup(series map[string][]Point) map[string][]Point {
	fastest := make(map[int]float64)
	for _, pts := range series {
		for _, pt := range pts {
			if pt.Y <= 0 {
				continue
			}
			if f, ok := fastest[pt.Size]; !ok || pt.Y < f {
				fastest[pt.Size] = pt.Y
			}
		}
	}

	out := make(map[string][]Point, len(series))
	for lang, pts := range series {
		for _, pt := range pts {
			if pt.Y <= 0 {
				continue
			}
			out[lang] = append(out[lang], Point{Size: pt.Size, Y: fastest[pt.Size] / pt.Y})
		}
	}
	return out
}

// Languages returns the series names in plotting order.
func Languages[V any](series map[string]V) []string {
	var known, rest []string
	for _, l := range LanguageOrder {
		if _, ok := series[l]; ok {
			known = append(known, l)
		}
	}
	for l := range series {
		if !slices.Contains(LanguageOrder, l) {
			rest = append(rest, l)
		}
	}
	slices.Sort(rest)
	return append(known, rest...)
}

// Build assembles the plot for spec without writing it.
func Build(spec Spec, summaries []model.Summary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = "Matrix size (n)"
	p.Y.Label.Text = spec.YLabel
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	if spec.LogLog {
		p.X.Scale = plot.LogScale{}
		p.Y.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	series := Series(summaries, spec.Value)
	if spec.Relative {
		series = Speedup(series)
	}
	for _, lang := range Languages(series) {
		c := colorFor(lang)

		var (
			xys  plotter.XYs
			errs plotter.YErrors
		)
		for _, pt := range series[lang] {
			if spec.LogLog && (pt.Size <= 0 || pt.Y <= 0) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(pt.Size), Y: pt.Y})
			errs = append(errs, struct{ Low, High float64 }{
				Low:  max(pt.Y-pt.Lo, 0),
				High: max(pt.Hi-pt.Y, 0),
			})
		}
		if len(xys) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", lang, err)
		}
		line.Color = c
		line.Width = vg.Points(1.5)
		points.Color = c
		p.Add(line, points)
		p.Legend.Add(lang, line, points)

		if spec.ErrorBars {
			bars, err := plotter.NewYErrorBars(struct {
				plotter.XYs
				plotter.YErrors
			}{xys, errs})
			if err != nil {
				return nil, fmt.Errorf("%s error bars: %w", lang, err)
			}
			bars.Color = c
			p.Add(bars)
		}
	}

	if spec.LogLog {
		widenDegenerate(&p.X)
		widenDegenerate(&p.Y)
	}
	return p, nil
}

// widenDegenerate keeps a single-valued log axis strictly positive.
func widenDegenerate(a *plot.Axis) {
	if a.Min == a.Max && a.Min > 0 {
		a.Min /= 2
		a.Max *= 2
	}
}

// BoxPlots builds one panel per size, sizes ascending, with a box of
// per-run time_ms for each language and a marker at its mean.
func BoxPlots(records []model.Record) ([]*plot.Plot, error) {
	bySize := make(map[int]map[string]plotter.Values)
	for _, r := range records {
		if bySize[r.Size] == nil {
			bySize[r.Size] = make(map[string]plotter.Values)
		}
		bySize[r.Size][r.Language] = append(bySize[r.Size][r.Language], r.TimeMS)
	}

	sizes := make([]int, 0, len(bySize))
	for n := range bySize {
		sizes = append(sizes, n)
	}
	slices.Sort(sizes)

	panels := make([]*plot.Plot, 0, len(sizes))
	for _, n := range sizes {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Per-run time at n=%d", n)
		p.X.Label.Text = "Language"
		p.Y.Label.Text = "Time (ms)"

		langs := Languages(bySize[n])
		for i, lang := range langs {
			vals := bySize[n][lang]
			box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), vals)
			if err != nil {
				return nil, fmt.Errorf("n=%d %s: %w", n, lang, err)
			}
			box.FillColor = colorFor(lang)

			mean, err := plotter.NewScatter(plotter.XYs{{X: float64(i), Y: stat.Mean(vals, nil)}})
			if err != nil {
				return nil, fmt.Errorf("n=%d %s mean: %w", n, lang, err)
			}
			mean.Shape = draw.TriangleGlyph{}
			p.Add(box, mean)
		}
		p.NominalX(langs...)
		panels = append(panels, p)
	}
	return panels, nil
}

// saveGrid lays panels out three per row and writes them as one PNG.
func saveGrid(path string, panels []*plot.Plot) error {
	cols := min(3, len(panels))
	rows := (len(panels) + cols - 1) / cols

	img := vgimg.New(vg.Length(cols)*6*vg.Inch, vg.Length(rows)*4*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	for i, p := range panels {
		p.Draw(tiles.At(dc, i%cols, i/cols))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render writes every chart in Charts to dir, plus the box-plot grid when
// records are given, and returns the written paths.
func Render(dir string, summaries []model.Summary, records []model.Record) ([]string, error) {
	if len(summaries) == 0 {
		return nil, fmt.Errorf("no summaries to plot")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	var written []string
	for _, spec := range Charts {
		p, err := Build(spec, summaries)
		if err != nil {
			return written, fmt.Errorf("%s: %w", spec.File, err)
		}
		path := filepath.Join(dir, spec.File)
		if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
			return written, fmt.Errorf("%s: %w", spec.File, err)
		}
		written = append(written, path)
	}

	if len(records) == 0 {
		return written, nil
	}
	panels, err := BoxPlots(records)
	if err != nil {
		return written, fmt.Errorf("%s: %w", BoxPlotFile, err)
	}
	path := filepath.Join(dir, BoxPlotFile)
	if err := saveGrid(path, panels); err != nil {
		return written, fmt.Errorf("%s: %w", BoxPlotFile, err)
	}
	return append(written, path), nil
}
