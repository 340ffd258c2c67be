package formatter

import (
	"fmt"
	"strings"
)

const (
	meterFull  = "█"
	meterEmpty = "░"
	minMeter   = 2
)

// RenderProgress draws a meter such as [████░░░░]  50% for a fraction in
// [0, 1]. Out-of-range fractions are clamped. A full meter is green, a
// started one yellow and an untouched one red.
func RenderProgress(frac float64, width int) string {
	frac = max(0, min(frac, 1))
	width = max(width, minMeter)

	cells := min(int(frac*float64(width)), width)
	meter := strings.Repeat(meterFull, cells) + strings.Repeat(meterEmpty, width-cells)

	style := StyleRed
	switch {
	case frac >= 1:
		style = StyleGreen
	case frac > 0:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(meter), frac*100)
}

// RenderRatio draws value out of target. A non-positive target renders empty.
func RenderRatio(value, target, width int) string {
	if target <= 0 {
		return RenderProgress(0, width)
	}
	return RenderProgress(float64(value)/float64(target), width)
}
