package nlparse

import "strconv"

// clockContext tracks the previous resolved hour within one day segment.
// The zero value starts a fresh segment.
//
// When a bare hour follows a known hour in the same segment and is not
// greater than it (and below 12), it is read as the afternoon: "9시 ...
// 1시" means 09:00 then 13:00. This is a best-effort heuristic, scoped
// to a single segment and never carried across segments or sentences.
type clockContext struct {
	prevHour24 int
	hasPrev    bool
}

// resolve maps a matched am/pm marker and raw hour to a 24-hour value
// and records it for subsequent bare hours in the same segment.
func (c *clockContext) resolve(ampm string, hour int) int {
	switch {
	case ampm == MarkerPM && hour < 12:
		hour += 12
	case ampm == MarkerAM && hour == 12:
		hour = 0
	case ampm == "" && c.hasPrev && hour <= c.prevHour24 && hour < 12:
		hour += 12
	}
	c.prevHour24 = hour
	c.hasPrev = true
	return hour
}

// resolveClock maps an am/pm marker and raw hour without any carry
// context, for sentences anchored on one explicit date.
func resolveClock(ampm string, hour int) int {
	if ampm == MarkerPM && hour < 12 {
		return hour + 12
	}
	if ampm == MarkerAM && hour == 12 {
		return 0
	}
	return hour
}

// timeMatch is one "N시 [M분]" occurrence inside a segment.
type timeMatch struct {
	ampm   string
	hour   int
	minute int
	start  int // byte offset of the match in the segment
	end    int // byte offset just past the match
}

func findTimeMatches(segment string) []timeMatch {
	idx := timePattern.FindAllStringSubmatchIndex(segment, -1)
	matches := make([]timeMatch, 0, len(idx))
	for _, loc := range idx {
		var m timeMatch
		m.start = loc[0]
		m.end = loc[1]
		if loc[2] >= 0 {
			m.ampm = segment[loc[2]:loc[3]]
		}
		m.hour, _ = strconv.Atoi(segment[loc[4]:loc[5]])
		if loc[6] >= 0 {
			m.minute, _ = strconv.Atoi(segment[loc[6]:loc[7]])
		}
		matches = append(matches, m)
	}
	return matches
}
