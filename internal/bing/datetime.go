package bing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gettickets/gettickets/internal/core"
)

// NormalizeTime maps a qualitative time-of-day token ("Morning", "Evening",
// ...) to its canonical clock time. Anything else is treated as a literal
// clock-time string and passed through trimmed.
func NormalizeTime(t string) string {
	if nst, ok := core.ParseNonSpecificTime(t); ok {
		return nst.ClockTime()
	}
	return strings.TrimSpace(t)
}

// to24Hour converts a displayed 12-hour time like "10:15" or "12:30 PM" to
// zero-padded 24-hour "HH:mm". The page only marks the first PM showing in a
// row explicitly, so the caller threads pmCarry through the row scan: once a
// PM marker has been seen, every later hour below 12 gets 12 added. The
// returned carry reflects any marker seen on this entry; ok is false when the
// text does not parse as a clock time.
func to24Hour(display string, pmCarry bool) (formatted string, pm bool, ok bool) {
	pm = pmCarry
	s := strings.ToUpper(strings.TrimSpace(display))
	if strings.Contains(s, "PM") {
		pm = true
	}
	s = strings.ReplaceAll(s, "AM", "")
	s = strings.ReplaceAll(s, "PM", "")
	s = strings.TrimSpace(s)

	hhText, mmText, hasMinutes := strings.Cut(s, ":")
	hh, err := strconv.Atoi(strings.TrimSpace(hhText))
	if err != nil {
		return "", pm, false
	}
	mm := 0
	if hasMinutes {
		mm, err = strconv.Atoi(strings.TrimSpace(mmText))
		if err != nil {
			return "", pm, false
		}
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return "", pm, false
	}
	if pm && hh < 12 {
		hh += 12
	}
	return fmt.Sprintf("%02d:%02d", hh, mm), pm, true
}
