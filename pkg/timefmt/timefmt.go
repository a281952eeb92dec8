// Package timefmt renders dates and timestamps the way the care team reads
// them (Brazilian day-first calendar format) and computes ages in completed
// years.
package timefmt

import "time"

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 às 15:04"
)

// Date renders a calendar date as dd/mm/yyyy. Used for birth dates and
// prescription validity windows.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// DateTime renders a full timestamp as dd/mm/yyyy às hh:mm.
func DateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// Age returns the number of completed years between birth and asOf, at day
// granularity. The birthday itself counts as completed: someone born
// 2010-06-15 turns 14 on 2024-06-15, not the day after.
func Age(birth, asOf time.Time) int {
	years := asOf.Year() - birth.Year()
	bm, bd := birth.Month(), birth.Day()
	am, ad := asOf.Month(), asOf.Day()
	if am < bm || (am == bm && ad < bd) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
