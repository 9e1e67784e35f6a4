package clock

import "time"

// Clock provides timestamps for ledger rows. Injected so tests can pin time.
type Clock interface {
	Now() time.Time
}

// EAT is the business timezone (Addis Ababa, UTC+3). All persisted timestamps
// use it, matching what operators see on their receipts.
var EAT = time.FixedZone("EAT", 3*60*60)

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().In(EAT)
}

// System returns the wall clock in EAT.
func System() Clock {
	return systemClock{}
}

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock {
	return fixedClock{t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
