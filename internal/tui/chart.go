package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/wonny/marketdesk/internal/dashboard"
)

const (
	axisWidth    = 10 // "%9.2f" plus the axis rune
	minPlotWidth = 10
	minPlotRows  = 4
	closeMark    = '●'
	openMark     = '·'
)

// renderLineChart plots the close and open lines of s into a width x height
// block, including the price axis, the date axis and a legend.
func renderLineChart(t Theme, s dashboard.Series, width, height int) string {
	if s.Len() == 0 {
		return t.MutedText.Render("No data to chart")
	}

	plotWidth := width - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	// Reserve rows for the bottom axis, the dates and the legend
	rows := height - 3
	if rows < minPlotRows {
		rows = minPlotRows
	}

	lo, hi := s.Bounds()
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}

	plot := func(values []float64, mark rune) {
		for col := 0; col < plotWidth; col++ {
			v := values[sampleIndex(col, plotWidth, len(values))]
			grid[valueRow(v, lo, hi, rows)][col] = mark
		}
	}
	plot(s.Open, openMark)
	plot(s.Close, closeMark)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		label := ""
		switch row {
		case 0:
			label = fmt.Sprintf("%9.2f", hi)
		case rows / 2:
			label = fmt.Sprintf("%9.2f", (hi+lo)/2)
		case rows - 1:
			label = fmt.Sprintf("%9.2f", lo)
		}
		b.WriteString(t.Axis.Render(fmt.Sprintf("%9s┤", label)))

		for _, r := range grid[row] {
			switch r {
			case closeMark:
				b.WriteString(t.CloseLine.Render(string(r)))
			case openMark:
				b.WriteString(t.OpenLine.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(t.Axis.Render(strings.Repeat(" ", axisWidth-1) + "└" + strings.Repeat("─", plotWidth)))
	b.WriteString("\n")
	b.WriteString(dateAxis(t, s, plotWidth))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", axisWidth))
	b.WriteString(t.CloseLine.Render(string(closeMark) + " Close"))
	b.WriteString("  ")
	b.WriteString(t.OpenLine.Render(string(openMark) + " Open"))

	return b.String()
}

// sampleIndex maps a plot column to a bar index, spreading n bars over width
func sampleIndex(col, width, n int) int {
	if n <= 1 || width <= 1 {
		return n - 1
	}
	return int(math.Round(float64(col) * float64(n-1) / float64(width-1)))
}

// valueRow maps a price to a grid row, row 0 being the high
func valueRow(v, lo, hi float64, rows int) int {
	if hi <= lo {
		return rows / 2
	}
	row := int(math.Round((hi - v) / (hi - lo) * float64(rows-1)))
	return max(0, min(rows-1, row))
}

func dateAxis(t Theme, s dashboard.Series, plotWidth int) string {
	first := s.Labels[0]
	last := s.Labels[s.Len()-1]

	gap := plotWidth - len(first) - len(last)
	if s.Len() == 1 || gap < 1 {
		return strings.Repeat(" ", axisWidth) + t.Axis.Render(last)
	}
	return strings.Repeat(" ", axisWidth) + t.Axis.Render(first+strings.Repeat(" ", gap)+last)
}
