package record

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrInvalidSize reports a non-positive image or video dimension.
	ErrInvalidSize = errors.New("invalid size")
	// ErrTooFewSamples reports a history too short to plot.
	ErrTooFewSamples = errors.New("too few samples")
)

// History collects per-frame statistics of a run.
type History struct {
	Frames []float64
	Total  []float64
	Active []float64
}

// Add appends one sample.
func (h *History) Add(frame int, total float64, active int) {
	h.Frames = append(h.Frames, float64(frame))
	h.Total = append(h.Total, total)
	h.Active = append(h.Active, float64(active))
}

// Len returns the number of samples.
func (h *History) Len() int { return len(h.Frames) }

// WriteChart renders total liquid (left axis) and active cells (right axis)
// over time as a PNG.
func (h *History) WriteChart(w io.Writer, title string) error {
	if h.Len() < 2 {
		return fmt.Errorf("chart with %d samples: %w", h.Len(), ErrTooFewSamples)
	}
	graph := chart.Chart{
		Title:  title,
		Width:  800,
		Height: 360,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "frame",
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "total liquid",
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(h.Total)},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "active cells",
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(h.Active)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "total liquid",
				XValues: h.Frames,
				YValues: h.Total,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 30, G: 90, B: 200, A: 255}, StrokeWidth: 3},
			},
			chart.ContinuousSeries{
				Name:    "active cells",
				YAxis:   chart.YAxisSecondary,
				XValues: h.Frames,
				YValues: h.Active,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// axisMax pads the largest value so a flat series still gets a usable range.
func axisMax(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		return 1
	}
	return peak * 1.1
}
