// Package pricing holds the arithmetic behind deliveries and supplier price lists:
// line totals, aggregate totals and effective-period checks. It has no I/O.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places money amounts are rounded to.
const MoneyPlaces = 2

// WeightPlaces is the number of decimal places a weight (kg) is stored with.
const WeightPlaces = 3

const dateLayout = "2006-01-02"

// ErrInvertedPeriod is returned when a period starts after it ends.
var ErrInvertedPeriod = errors.New("effective from date cannot be after effective to date")

// LineTotal returns weight × unitPrice rounded to cents, half-up.
func LineTotal(weight, unitPrice decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative amounts handled here.
	return weight.Mul(unitPrice).Round(MoneyPlaces)
}

// HasWeightScale reports whether w fits in WeightPlaces decimal places, i.e.
// storing it loses nothing.
func HasWeightScale(w decimal.Decimal) bool {
	return w.Equal(w.Round(WeightPlaces))
}

// Totals accumulates weight and cost over a set of lines.
type Totals struct {
	Weight decimal.Decimal
	Cost   decimal.Decimal
}

// Add folds one line into the totals.
func (t *Totals) Add(weight, cost decimal.Decimal) {
	t.Weight = t.Weight.Add(weight)
	t.Cost = t.Cost.Add(cost)
}

// Day truncates t to its calendar date (midnight UTC), dropping time and zone.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Period is an inclusive range of calendar days. A nil To is open-ended.
type Period struct {
	From time.Time
	To   *time.Time
}

// NewPeriod builds a Period normalised to calendar days.
func NewPeriod(from time.Time, to *time.Time) Period {
	p := Period{From: Day(from)}
	if to != nil {
		end := Day(*to)
		p.To = &end
	}
	return p
}

// Validate rejects periods whose start is after their end.
func (p Period) Validate() error {
	if p.To != nil && p.From.After(*p.To) {
		return ErrInvertedPeriod
	}
	return nil
}

// Overlaps reports whether p and o share at least one day. Two periods are
// disjoint only when one of them has an end that falls strictly before the
// other one starts.
func (p Period) Overlaps(o Period) bool {
	pEndsFirst := p.To != nil && p.To.Before(o.From)
	oEndsFirst := o.To != nil && o.To.Before(p.From)
	return !(pEndsFirst || oEndsFirst)
}

// Contains reports whether the calendar day of d lies inside p.
func (p Period) Contains(d time.Time) bool {
	day := Day(d)
	if day.Before(p.From) {
		return false
	}
	return p.To == nil || !day.After(*p.To)
}

func (p Period) String() string {
	end := "indefinite"
	if p.To != nil {
		end = p.To.Format(dateLayout)
	}
	return fmt.Sprintf("%s to %s", p.From.Format(dateLayout), end)
}
