package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampBar(pct float64, width int) (float64, int, int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return pct, filled, width - filled
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct, filled, empty := clampBar(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

// RenderCompactBar renders a bare bar without brackets or percentage, used
// under the clock. Dimmed bars are drawn in the muted color.
func RenderCompactBar(pct float64, width int, dim bool) string {
	_, filled, empty := clampBar(pct, width)
	style := StyleGreen
	if dim {
		style = StyleDim
	}
	return style.Render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, empty))
}

// LongBreakChart draws one cell per focus session in the current long
// break cycle: filled for sessions done since the last long break, hollow
// for those still to go.
//
//	●●○○  2/4 until long break
func LongBreakChart(completed, interval int) string {
	if interval < 1 {
		interval = 1
	}
	if completed < 0 {
		completed = 0
	}
	done := completed % interval
	cells := StylePurple.Render(strings.Repeat("●", done)) + StyleDim.Render(strings.Repeat("○", interval-done))
	return fmt.Sprintf("%s  %s", cells, Dim(fmt.Sprintf("%d/%d until long break", done, interval)))
}
