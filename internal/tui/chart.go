package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DataSeries is a single line in the sweep chart, one point per split.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// SweepChart renders household income and saved days against the number
// of months parent1 stays home.
type SweepChart struct {
	Title    string
	Series   []*DataSeries
	Width    int
	Height   int
	Selected int // highlighted split (index into Points)
}

// NewSweepChart creates a chart with default dimensions.
func NewSweepChart(title string) *SweepChart {
	return &SweepChart{
		Title:  title,
		Width:  64,
		Height: 12,
	}
}

// AddSeries appends a line to the chart.
func (c *SweepChart) AddSeries(name string, points []float64, color lipgloss.Color) *SweepChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// Render returns the styled chart.
func (c *SweepChart) Render() string {
	if len(c.Series) == 0 || len(c.Series[0].Points) == 0 {
		return statusBarStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(titleStyle.Render(c.Title))
		content.WriteString("\n")
	}

	// Each series is normalized to its own range so income (hundreds of
	// thousands) and days (hundreds) share one grid.
	yAxisWidth := 10
	chartWidth := c.Width - yAxisWidth
	points := len(c.Series[0].Points)

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = make([]rune, chartWidth)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	chars := []rune{'*', 'o', '+'}
	for seriesIdx, series := range c.Series {
		minVal, maxVal := seriesRange(series.Points)
		prevX, prevY := -1, -1
		for i, point := range series.Points {
			x := columnFor(i, points, chartWidth)
			y := rowFor(point, minVal, maxVal, c.Height)
			grid[y][x] = chars[seriesIdx%len(chars)]
			if prevX >= 0 {
				drawLine(grid, prevX, prevY, x, y, chars[seriesIdx%len(chars)])
			}
			prevX, prevY = x, y
		}
	}

	// Mark the selected split with a vertical bar.
	if c.Selected >= 0 && c.Selected < points {
		x := columnFor(c.Selected, points, chartWidth)
		for y := 0; y < c.Height; y++ {
			if grid[y][x] == ' ' {
				grid[y][x] = '|'
			}
		}
	}

	for _, row := range grid {
		content.WriteString(strings.Repeat(" ", yAxisWidth))
		content.WriteString("│")
		content.WriteString(string(row))
		content.WriteString("\n")
	}
	content.WriteString(strings.Repeat(" ", yAxisWidth))
	content.WriteString("└")
	content.WriteString(strings.Repeat("─", chartWidth))
	content.WriteString("\n")
	content.WriteString(strings.Repeat(" ", yAxisWidth+1))
	content.WriteString(fmt.Sprintf("0%*s", chartWidth-1, fmt.Sprintf("%d", points-1)))
	content.WriteString("\n")

	content.WriteString(c.renderLegend())
	return content.String()
}

func (c *SweepChart) renderLegend() string {
	chars := []rune{'*', 'o', '+'}
	parts := make([]string, 0, len(c.Series))
	for i, series := range c.Series {
		style := lipgloss.NewStyle().Foreground(series.Color)
		parts = append(parts, style.Render(fmt.Sprintf("%c %s", chars[i%len(chars)], series.Name)))
	}
	return strings.Join(parts, "   ")
}

func seriesRange(points []float64) (float64, float64) {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minVal = math.Min(minVal, p)
		maxVal = math.Max(maxVal, p)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}
	padding := (maxVal - minVal) * 0.1
	return minVal - padding, maxVal + padding
}

func columnFor(i, points, chartWidth int) int {
	if points <= 1 {
		return 0
	}
	return int(float64(i) / float64(points-1) * float64(chartWidth-1))
}

func rowFor(point, minVal, maxVal float64, height int) int {
	y := height - 1 - int((point-minVal)/(maxVal-minVal)*float64(height-1))
	if y < 0 {
		y = 0
	}
	if y >= height {
		y = height - 1
	}
	return y
}

// drawLine fills grid cells between two points using a simple step
// interpolation.
func drawLine(grid [][]rune, x1, y1, x2, y2 int, ch rune) {
	steps := int(math.Max(math.Abs(float64(x2-x1)), math.Abs(float64(y2-y1))))
	if steps == 0 {
		return
	}
	for s := 1; s < steps; s++ {
		x := x1 + (x2-x1)*s/steps
		y := y1 + (y2-y1)*s/steps
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = ch
		}
	}
}
