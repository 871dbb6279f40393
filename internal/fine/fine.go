package fine

import (
	"math"
	"time"
)

// Condition describes the physical state of a copy at return time.
type Condition string

const (
	ConditionNormal  Condition = "normal"
	ConditionDamaged Condition = "damaged"
	ConditionLost    Condition = "lost"
)

// DefaultRatePercent is the overdue fine rate applied when the system
// setting is absent or unparsable.
const DefaultRatePercent = 5.0

// Condition surcharges as a fraction of the copy price.
const (
	damagedFraction = 0.5
	lostFraction    = 1.0
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionNormal, ConditionDamaged, ConditionLost:
		return true
	}

	return false
}

// DaysOverdue returns how many days late a return at now is against the
// due date, rounding partial days up. Returns 0 when the return is on time.
func DaysOverdue(due, now time.Time) int {
	if !now.After(due) {
		return 0
	}

	return int(math.Ceil(now.Sub(due).Hours() / 24))
}

// Calculate computes the fine for one returned copy. The overdue part is
// price * ratePercent/100 per overdue day; the condition part is a flat
// fraction of the price (damaged: half, lost: full). Both parts apply when
// a copy is overdue and damaged/lost at the same time.
//
// A non-positive price is treated as 0, so the result is never negative
// regardless of input.
func Calculate(price int64, daysOverdue int, ratePercent float64, condition Condition) int64 {
	if price <= 0 {
		return 0
	}

	if ratePercent < 0 {
		ratePercent = 0
	}

	var total int64

	if daysOverdue > 0 {
		total += int64(math.Round(float64(price) * ratePercent / 100 * float64(daysOverdue)))
	}

	switch condition {
	case ConditionDamaged:
		total += int64(math.Round(float64(price) * damagedFraction))
	case ConditionLost:
		total += int64(math.Round(float64(price) * lostFraction))
	}

	return total
}
