package tradepnl

import (
	"fmt"
	"time"
)

// Display formats used in chart labels and trade rows.
const (
	chartLabelLayout = "2006-01-02 15:04"
	tradeTimeLayout  = "2006-01-02 15:04:05"
)

// formatHoldingPeriod renders a duration as "Nd HH:MM:SS".
func formatHoldingPeriod(seconds Amount) string {
	total := seconds.Decimal().IntPart()
	if total < 0 {
		total = 0
	}
	d := time.Duration(total) * time.Second
	days := int(d.Hours()) / 24
	d -= time.Duration(days) * 24 * time.Hour
	h := int(d.Hours())
	d -= time.Duration(h) * time.Hour
	m := int(d.Minutes())
	d -= time.Duration(m) * time.Minute
	s := int(d.Seconds())
	return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, s)
}
