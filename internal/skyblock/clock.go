// Package skyblock derives the in-game calendar and event countdowns
// from wall-clock time. Everything here is pure arithmetic: no network,
// no stored state, fully determined by the instant passed in.
package skyblock

import (
	"math"
	"time"
)

// Default calendar constants. The epoch is the game calendar's day 1 of
// month 1 (11 June 2019 UTC); 20 real minutes make one in-game day.
const (
	DefaultEpochUnix     = 1560275700
	DefaultRealMinPerDay = 20
	DefaultDaysPerMonth  = 31
	DefaultHoursPerDay   = 24
	DefaultFreeWillCycle = 96 * time.Hour
)

// DefaultEventDays are the cult trigger days, zero-indexed within a
// month (days 7, 14, 21, 28 on screen).
var DefaultEventDays = []int{6, 13, 20, 27}

// Clock converts real instants into the derived calendar. The zero
// value is not useful; construct with Default or from config.
type Clock struct {
	Epoch         time.Time
	RealMinPerDay int
	DaysPerMonth  int
	HoursPerDay   int
	EventDays     []int
	FreeWillCycle time.Duration
}

// Default returns a Clock with the stock calendar constants.
func Default() Clock {
	return Clock{
		Epoch:         time.Unix(DefaultEpochUnix, 0).UTC(),
		RealMinPerDay: DefaultRealMinPerDay,
		DaysPerMonth:  DefaultDaysPerMonth,
		HoursPerDay:   DefaultHoursPerDay,
		EventDays:     DefaultEventDays,
		FreeWillCycle: DefaultFreeWillCycle,
	}
}

// Moment is a fully derived calendar position. Month and Day are
// 1-based; Hour and Minute follow the usual 0-based convention. The
// raw counters are kept for event math and tests.
type Moment struct {
	Month  int
	Day    int
	Hour   int
	Minute int

	DerivedSeconds float64 // derived seconds since the epoch
	TimeOfDay      float64 // derived seconds into the current day
	RealElapsed    float64 // real seconds since the epoch, clamped to >= 0
}

func (c Clock) realSecPerDay() float64 {
	return float64(c.RealMinPerDay) * 60
}

func (c Clock) realSecPerMonth() float64 {
	return c.realSecPerDay() * float64(c.DaysPerMonth)
}

func (c Clock) derivedSecPerDay() float64 {
	return float64(c.HoursPerDay) * 3600
}

// Moment derives the calendar position for a real instant. Instants
// before the epoch clamp to the epoch moment rather than going
// negative.
func (c Clock) Moment(now time.Time) Moment {
	elapsed := now.Sub(c.Epoch).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	derived := elapsed * c.derivedSecPerDay() / c.realSecPerDay()
	totalDays := int(math.Floor(derived / c.derivedSecPerDay()))
	timeOfDay := math.Mod(derived, c.derivedSecPerDay())

	return Moment{
		Month:          totalDays/c.DaysPerMonth + 1,
		Day:            totalDays%c.DaysPerMonth + 1,
		Hour:           int(timeOfDay / 3600),
		Minute:         int(math.Mod(timeOfDay, 3600) / 60),
		DerivedSeconds: derived,
		TimeOfDay:      timeOfDay,
		RealElapsed:    elapsed,
	}
}

// UntilCultEvent returns the real time remaining until the next cult
// trigger day starts. The result is always strictly positive: an
// instant exactly on a trigger-day boundary counts down to the next
// one. When no trigger day remains in the current month the countdown
// wraps to the first trigger day of the next month.
func (c Clock) UntilCultEvent(now time.Time) time.Duration {
	m := c.Moment(now)
	realInMonth := math.Mod(m.RealElapsed, c.realSecPerMonth())

	best := -1.0
	for _, d := range c.EventDays {
		dayStart := float64(d) * c.realSecPerDay()
		if dayStart > realInMonth {
			gap := dayStart - realInMonth
			if best < 0 || gap < best {
				best = gap
			}
		}
	}
	if best < 0 {
		best = c.realSecPerMonth() - realInMonth + float64(c.EventDays[0])*c.realSecPerDay()
	}
	return time.Duration(best * float64(time.Second))
}

// UntilFreeWill returns the time remaining in the current free-will
// cycle, anchored at an arbitrary real timestamp. At the anchor itself
// (and at every exact multiple of the cycle) the full cycle remains.
func (c Clock) UntilFreeWill(now, anchor time.Time) time.Duration {
	cycle := c.FreeWillCycle.Seconds()
	elapsed := math.Mod(now.Sub(anchor).Seconds(), cycle)
	if elapsed < 0 {
		elapsed += cycle
	}
	return time.Duration((cycle - elapsed) * float64(time.Second))
}
