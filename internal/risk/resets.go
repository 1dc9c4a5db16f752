package risk

import "time"

// Calendar boundaries are computed here as pure functions so reset behavior is
// testable without a governor and never depends on wall-clock side effects.

// NextDailyReset returns the next local trading-day boundary (midnight) after t.
func NextDailyReset(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}

// NextWeeklyReset returns the next ISO week start (Monday 00:00) after t.
// A t that is exactly Monday midnight rolls to the following week.
func NextWeeklyReset(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())

	days := (int(time.Monday) - int(midnight.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return midnight.AddDate(0, 0, days)
}
