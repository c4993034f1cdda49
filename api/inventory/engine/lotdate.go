package engine

import (
	"regexp"
	"time"
)

// Sage lot numbers embed a DDMMYY production date in one of two fixed
// layouts: a 3-5 letter site prefix followed by the date, or the literal
// prefix "LOT". Anchored patterns keep product codes elsewhere in the
// string from matching.
var (
	reLotSiteDate = regexp.MustCompile(`^[A-Z]{3,5}(\d{6})\d*`)
	reLotPrefix   = regexp.MustCompile(`^LOT(\d{6})`)
)

// ExtractLotDate parses the calendar date embedded in a lot number.
// Returns ok=false when no pattern matches or the digits do not form a
// valid date (e.g. month 13). Never errors on malformed input.
func ExtractLotDate(lotNumber string) (time.Time, bool) {
	if lotNumber == "" {
		return time.Time{}, false
	}
	var digits string
	if m := reLotSiteDate.FindStringSubmatch(lotNumber); m != nil {
		digits = m[1]
	} else if m := reLotPrefix.FindStringSubmatch(lotNumber); m != nil {
		digits = m[1]
	} else {
		return time.Time{}, false
	}
	t, err := time.Parse("020106", digits)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
