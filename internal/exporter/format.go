package exporter

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"paneldata/internal/dates"
)

// formatFloat formats a float for delimited output without trailing
// zeros. NaN means unset and renders empty.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatBool formats a boolean value for delimited output
func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// formatValue renders one cell value for delimited output. Unset values
// (nil, NaN, the zero time) render as empty strings.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return formatFloat(x)
	case bool:
		return formatBool(x)
	case string:
		return x
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return dates.Format(x)
	case time.Duration:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
