package domain

import (
	"slices"
	"time"
)

// Period names a seasonal window within a year. The zero value means the
// reading falls outside every window.
type Period string

const (
	PeriodNone   Period = ""
	PeriodMarApr Period = "15 Mar–15 Apr"
	PeriodAprMay Period = "16 Apr–15 May"
)

// periodOrder is the canonical column order within a year.
var periodOrder = []Period{PeriodMarApr, PeriodAprMay}

// Periods returns the defined periods in canonical order.
func Periods() []Period { return slices.Clone(periodOrder) }

// rank returns the canonical position of p, or len(periodOrder) for PeriodNone.
func (p Period) rank() int {
	if i := slices.Index(periodOrder, p); i >= 0 {
		return i
	}
	return len(periodOrder)
}

// PeriodOf assigns t to a seasonal window by month and day. Every time maps
// to at most one period; ok is false when it maps to none.
func PeriodOf(t time.Time) (Period, bool) {
	month, day := t.Month(), t.Day()
	switch {
	case (month == time.March && day >= 15) || (month == time.April && day <= 15):
		return PeriodMarApr, true
	case (month == time.April && day > 15) || (month == time.May && day <= 15):
		return PeriodAprMay, true
	default:
		return PeriodNone, false
	}
}
