package progression

import "time"

// daysBetween returns the whole calendar days from date a to date b, both
// in YYYY-MM-DD form. The comparison is midnight-to-midnight on date-only
// values, so DST shifts and wall-clock offsets cannot skew the result.
// ok is false when either date fails to parse.
func daysBetween(a, b string) (days int, ok bool) {
	da, err := time.ParseInLocation(DateLayout, a, time.UTC)
	if err != nil {
		return 0, false
	}
	db, err := time.ParseInLocation(DateLayout, b, time.UTC)
	if err != nil {
		return 0, false
	}
	return int(db.Sub(da).Hours() / 24), true
}
