package cli

import (
	"io"
	"os"

	consolesize "github.com/nathan-fiscaletti/consolesize-go"
)

const (
	defaultHistogramWidth = 40
	minHistogramWidth     = 10
	// room for the bucket bounds and counts uniplot prints left of each bar
	histogramLabelWidth = 40
)

// histogramWidth is the bar width for histograms printed to w. Bars grow with the terminal when w
// is stdout.
func histogramWidth(w io.Writer) int {
	if w != io.Writer(os.Stdout) {
		return defaultHistogramWidth
	}
	cols, _ := consolesize.GetConsoleSize()
	return barWidth(cols)
}

func barWidth(cols int) int {
	if cols <= 0 {
		return defaultHistogramWidth
	}
	if width := cols - histogramLabelWidth; width > minHistogramWidth {
		return width
	}
	return minHistogramWidth
}
