// Package report computes per-track metrics and summaries for the command line tools.
package report

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mangostaniko/Visualization2-17s/internal/tracks"
	"github.com/mangostaniko/Visualization2-17s/pkg/math"
)

// ErrNoData is returned when there is nothing to summarize or plot.
var ErrNoData = errors.New("no data")

// TrackMetrics describes one track in source units.
type TrackMetrics struct {
	Points int
	Length float64
}

// Measure opens src and returns the point count and arc length of every track.
func Measure(src tracks.Source) ([]TrackMetrics, error) {
	if err := src.Open(); err != nil {
		return nil, fmt.Errorf("%w: %w", tracks.ErrSourceOpen, err)
	}
	defer src.Close()

	metrics := make([]TrackMetrics, src.TrackCount())
	for t := range metrics {
		n := src.PointCount(t)
		var length float64
		var prev math.Vec3
		for i := 0; i < n; i++ {
			x, y, z := src.Point(t, i)
			p := math.Vec3{X: x, Y: y, Z: z}
			if i > 0 {
				length += float64(p.Distance(prev))
			}
			prev = p
		}
		metrics[t] = TrackMetrics{Points: n, Length: length}
	}
	return metrics, nil
}

// Lengths returns the arc lengths of m.
func Lengths(m []TrackMetrics) []float64 {
	out := make([]float64, len(m))
	for i := range m {
		out[i] = m[i].Length
	}
	return out
}

// PointCounts returns the point counts of m as floats.
func PointCounts(m []TrackMetrics) []float64 {
	out := make([]float64, len(m))
	for i := range m {
		out[i] = float64(m[i].Points)
	}
	return out
}

// Summary is a descriptive summary of a sample.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // sample standard deviation, 0 for fewer than two values
	Min    float64
	Median float64
	Max    float64
}

// Summarize describes values. values is not modified.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoData
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s := Summary{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.2f sd=%.2f min=%.2f median=%.2f max=%.2f",
		s.Count, s.Mean, s.StdDev, s.Min, s.Median, s.Max)
}

// Histogram returns a histogram plot of values with the given number of bins.
func Histogram(values []float64, bins int, title, xLabel string) (*plot.Plot, error) {
	finite := make(plotter.Values, 0, len(values))
	for _, v := range values {
		if !gomath.IsNaN(v) && !gomath.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "tracks"

	h, err := plotter.NewHist(finite, max(bins, 1))
	if err != nil {
		return nil, fmt.Errorf("building histogram: %w", err)
	}
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)
	return p, nil
}

// SaveHistogram writes a histogram of values to path. The image format follows
// the file extension (png, svg, pdf, ...).
func SaveHistogram(path string, values []float64, bins int, title, xLabel string) error {
	p, err := Histogram(values, bins, title, xLabel)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
