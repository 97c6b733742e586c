package assistant

import (
	"fmt"
	"time"

	"github.com/parkjy76/haruplan/plugin/nlparse"
)

// Fixed phrasings for the three possible answers to "how many days".
const (
	daysLeftFutureFormat = "%s까지 %d일 남았어요. (D-%d)"
	daysLeftTodayFormat  = "%s 오늘입니다. (D-Day)"
	daysLeftPastFormat   = "%s 기준 %d일 지났어요. (D+%d)"
)

// DaysLeftReply answers a remaining-days question against the reference
// instant, or reports false when the sentence is not such a question or
// names no resolvable date.
func DaysLeftReply(text string, now time.Time) (string, bool) {
	if !nlparse.IsDaysLeftQuery(text) {
		return "", false
	}
	target, ok := nlparse.ResolveGenericDate(text, now)
	if !ok {
		return "", false
	}

	days := calendarDaysBetween(now, target)
	date := target.Format("2006-01-02")
	switch {
	case days > 0:
		return fmt.Sprintf(daysLeftFutureFormat, date, days, days), true
	case days == 0:
		return fmt.Sprintf(daysLeftTodayFormat, date), true
	default:
		return fmt.Sprintf(daysLeftPastFormat, date, -days, -days), true
	}
}

func calendarDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
