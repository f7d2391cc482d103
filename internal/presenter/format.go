package presenter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idr = message.NewPrinter(language.Indonesian)

// Rupiah formats an amount the way the storefront does: "Rp 1.250.000".
func Rupiah(amount float64) string {
	n := int64(math.Round(amount))
	if n < 0 {
		return idr.Sprintf("-Rp %d", -n)
	}
	return idr.Sprintf("Rp %d", n)
}

// Percent renders a whole-number percentage, e.g. "70%".
func Percent(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64) + "%"
}

// reviewDateLayouts are the date formats seen in review payloads.
var reviewDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReviewDate renders a review date as "2 January 2006". Unparseable input is
// returned unchanged.
func ReviewDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range reviewDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2 January 2006")
		}
	}
	return raw
}
