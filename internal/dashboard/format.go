package dashboard

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const noData = "no data"

var printer = message.NewPrinter(language.English)

// formatCount renders n with thousands separators.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// formatMean renders a mean to two decimals, or the placeholder when the
// selection had nothing to average.
func formatMean(v float64, err error) string {
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return noData
	}
	return fmt.Sprintf("%.2f", v)
}

func formatRange(lo, hi float64) string {
	return fmt.Sprintf("%.2f–%.2f", lo, hi)
}

func pointer(b bool) *bool {
	return &b
}
