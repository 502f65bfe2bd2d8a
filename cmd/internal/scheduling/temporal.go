// Package scheduling decides whether subscriptions and meetup changes are
// legal and annotates meetup listings with their derived temporal state.
package scheduling

import "time"

// Temporal is the position of a meetup date relative to the current time.
type Temporal int

const (
	Future Temporal = iota
	Past
)

func (t Temporal) String() string {
	if t == Past {
		return "past"
	}
	return "future"
}

// Classify reports Past iff at is strictly before now. A meetup happening
// exactly now is still Future.
func Classify(at, now time.Time) Temporal {
	if at.Before(now) {
		return Past
	}
	return Future
}

func IsPast(at, now time.Time) bool {
	return Classify(at, now) == Past
}
