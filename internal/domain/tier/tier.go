// Package tier maps engagement scores to discount tiers.
//
// Classify is the only place the score boundaries live; the discount
// percentage and the appreciation sentence are both read from the same
// per-tier table.
package tier

// Tier identifies one of the four score buckets.
type Tier int

const (
	// Proactive covers every score below 50, including negatives and NaN.
	Proactive Tier = iota
	// Engaged covers 50 <= score < 70.
	Engaged
	// Committed covers 70 <= score < 90.
	Committed
	// Dedicated covers score >= 90.
	Dedicated
)

// Score boundaries (inclusive lower bounds).
const (
	engagedFloor   = 50
	committedFloor = 70
	dedicatedFloor = 90
)

type details struct {
	name         string
	percent      int
	appreciation string
}

var tiers = [...]details{ //nolint:gochecknoglobals // immutable reference table
	Proactive: {"proactive", 15, "Taking proactive steps in your health management is crucial."},
	Engaged:   {"engaged", 20, "We appreciate your efforts in staying on top of your health."},
	Committed: {"committed", 25, "Your commitment to regular check-ups is commendable."},
	Dedicated: {"dedicated", 30, "We are impressed with your dedication to maintaining your health."},
}

// Classify returns the tier for score. It is total: anything that is not
// at least 50 (negative values, NaN) lands in Proactive.
func Classify(score float64) Tier {
	switch {
	case score >= dedicatedFloor:
		return Dedicated
	case score >= committedFloor:
		return Committed
	case score >= engagedFloor:
		return Engaged
	default:
		return Proactive
	}
}

// OfferAmount returns the discount percentage for score.
func OfferAmount(score float64) int {
	return Classify(score).Percent()
}

// Percent returns the discount percentage granted by t.
func (t Tier) Percent() int { return t.details().percent }

// Appreciation returns the sentence acknowledging the patient's engagement.
func (t Tier) Appreciation() string { return t.details().appreciation }

// String returns the tier name.
func (t Tier) String() string { return t.details().name }

func (t Tier) details() details {
	if t < Proactive || t > Dedicated {
		return tiers[Proactive]
	}
	return tiers[t]
}
