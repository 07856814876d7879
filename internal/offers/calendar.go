package offers

import (
	"sync"
	"time"
)

// LastNBusinessDays returns the last n B3 trading days up to and including
// from's date, most recent first.
func LastNBusinessDays(n int, from time.Time) []time.Time {
	out := make([]time.Time, 0, n)
	d := truncateToDate(from)

	for len(out) < n {
		if IsTradingDay(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

// IsTradingDay reports whether B3 holds a regular session on d: not a
// weekend, a national holiday, a São Paulo holiday the exchange observed, or
// an exchange closure.
func IsTradingDay(d time.Time) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, closed := closuresFor(d.Year())[d.Format("01-02")]
	return !closed
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

var (
	closureMu    sync.Mutex
	closureCache = map[int]map[string]struct{}{}
)

// closuresFor returns the MM-DD keys of every non-trading weekday of year.
func closuresFor(year int) map[string]struct{} {
	closureMu.Lock()
	defer closureMu.Unlock()

	if c, ok := closureCache[year]; ok {
		return c
	}

	c := map[string]struct{}{
		"01-01": {}, // New Year
		"04-21": {}, // Tiradentes
		"05-01": {}, // Labor Day
		"09-07": {}, // Independence Day
		"10-12": {}, // Our Lady Aparecida
		"11-02": {}, // All Souls' Day
		"11-15": {}, // Republic Proclamation
		"12-24": {}, // exchange closed
		"12-25": {}, // Christmas
		"12-31": {}, // exchange closed
	}
	if year <= 2021 {
		// São Paulo city holidays, observed by B3 until 2021
		c["01-25"] = struct{}{} // São Paulo anniversary
		c["07-09"] = struct{}{} // Constitutionalist Revolution
		c["11-20"] = struct{}{} // Black Consciousness Day
	}
	if year >= 2024 {
		c["11-20"] = struct{}{} // Black Consciousness Day, national since 2024
	}

	easter := easterSunday(year)
	for _, offset := range []int{
		-48, // Carnival Monday
		-47, // Carnival Tuesday
		-2,  // Good Friday
		60,  // Corpus Christi
	} {
		c[easter.AddDate(0, 0, offset).Format("01-02")] = struct{}{}
	}

	closureCache[year] = c
	return c
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
