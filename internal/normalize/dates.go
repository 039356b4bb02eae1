package normalize

import (
	"regexp"
	"strconv"
	"time"
)

var (
	reDate = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)
	reTime = regexp.MustCompile(`(\d{1,2})[:.](\d{2})`)
)

// ParseDateTime parses "DD.MM.YYYY[ HH:MM]" in loc. Noise such as "r.",
// "godz." or a line break between date and time is tolerated. The second
// return value reports whether a time of day was present.
func ParseDateTime(s string, loc *time.Location) (*time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	idx := reDate.FindStringSubmatchIndex(s)
	if idx == nil {
		return nil, false
	}
	day, _ := strconv.Atoi(s[idx[2]:idx[3]])
	month, _ := strconv.Atoi(s[idx[4]:idx[5]])
	year, _ := strconv.Atoi(s[idx[6]:idx[7]])

	hour, minute, hasTime := 0, 0, false
	if tm := reTime.FindStringSubmatch(s[idx[1]:]); tm != nil {
		h, _ := strconv.Atoi(tm[1])
		m, _ := strconv.Atoi(tm[2])
		if h < 24 && m < 60 {
			hour, minute, hasTime = h, m, true
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return nil, false
	}
	return &t, hasTime
}

// DaysBetween returns the number of calendar days from "from" to "to",
// both taken in to's location. Negative when to is in the past.
func DaysBetween(from, to time.Time) int {
	from = from.In(to.Location())
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
