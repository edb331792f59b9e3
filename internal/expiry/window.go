package expiry

import "time"

// Window is the inclusive timestamp range a scan covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// NextDayWindow returns the full calendar day after ref in loc, from
// 00:00:00.000 through 23:59:59.999. Items expiring anywhere in that span are
// "expiring tomorrow" from ref's point of view.
func NextDayWindow(ref time.Time, loc *time.Location) Window {
	ref = ref.In(loc)
	start := time.Date(ref.Year(), ref.Month(), ref.Day()+1, 0, 0, 0, 0, loc)
	end := time.Date(ref.Year(), ref.Month(), ref.Day()+1, 23, 59, 59, 999000000, loc)
	return Window{Start: start, End: end}
}
