package pkg

import (
	"fmt"
	"os"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
)

const chartTitle = "Confirmed for the last two weeks"

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Chart owns at most one live plot. Every Render replaces the held
// window, so repeated redraws never accumulate stale series.
type Chart struct {
	window int
	points []SeriesPoint
}

// NewChart creates a chart keeping the last window points of a series.
func NewChart(window int) *Chart {
	if window <= 0 {
		window = 14
	}
	return &Chart{window: window}
}

// Render replaces the chart contents with the last window points of the
// series, in chronological order.
func (c *Chart) Render(points []SeriesPoint) {
	c.points = LastWindow(points, c.window)
}

// Points returns the currently plotted window.
func (c *Chart) Points() []SeriesPoint {
	return c.points
}

// View draws the plot as terminal text: a title, a sparkline with one
// column per point, and a month/day axis for the first and last dates.
func (c *Chart) View() string {
	if len(c.points) == 0 {
		return chartTitle + "\n(no data)"
	}
	var lo, hi int64
	lo, hi = c.points[0].Cases, c.points[0].Cases
	for _, p := range c.points {
		if p.Cases < lo {
			lo = p.Cases
		}
		if p.Cases > hi {
			hi = p.Cases
		}
	}
	var line strings.Builder
	for _, p := range c.points {
		idx := 0
		if hi > lo {
			idx = int(float64(p.Cases-lo) / float64(hi-lo) * float64(len(sparkRunes)-1))
		}
		line.WriteRune(sparkRunes[idx])
	}
	first := monthDay(c.points[0])
	last := monthDay(c.points[len(c.points)-1])
	axis := first
	if pad := len(c.points) - len(first) - len(last); pad > 0 {
		axis += strings.Repeat(" ", pad) + last
	} else if last != first {
		axis += " " + last
	}
	latest := c.points[len(c.points)-1].Cases
	return fmt.Sprintf("%s\n%s  now=%d\n%s", chartTitle, line.String(), latest, axis)
}

// WritePNG renders the current window as a line-chart PNG snapshot.
func (c *Chart) WritePNG(path string) error {
	if len(c.points) < 2 {
		return fmt.Errorf("chart snapshot needs at least 2 points, have %d", len(c.points))
	}
	series := chart.TimeSeries{Name: chartTitle}
	for _, p := range c.points {
		series.XValues = append(series.XValues, p.Date)
		series.YValues = append(series.YValues, float64(p.Cases))
	}
	graph := chart.Chart{
		Title: chartTitle,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("1/2"),
		},
		Series: []chart.Series{series},
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close() // nolint: errcheck
	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}
	return nil
}

func monthDay(p SeriesPoint) string {
	return p.Date.Format("1/2")
}
