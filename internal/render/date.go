package render

import (
	"time"
)

// Baghdad has no DST; a fixed zone avoids depending on tzdata.
var iraqTime = time.FixedZone("AST", 3*60*60)

// FormatDate renders a review date the way ar-IQ browsers do:
// day/month/year in Arabic-Indic digits, Iraq local time.
func FormatDate(t time.Time) string {
	return arabicDigits.Replace(t.In(iraqTime).Format("2/1/2006"))
}
