package engine

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	RoundSizes   [5]uint8 // cards dealt per seat, cycling by round
	CardExchange bool     // partners trade one card before each round
	MaxRounds    uint16   // 0 = unlimited; reaching it ends the match undecided
}

// DefaultHouseRules returns the standard Dog house rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		RoundSizes:   [5]uint8{6, 5, 4, 3, 2},
		CardExchange: true,
		MaxRounds:    0,
	}
}

// HandSizeForRound returns how many cards each seat receives in round r
// (1-based). Rounds below 1 are treated as round 1.
func (r *HouseRules) HandSizeForRound(round uint16) uint8 {
	if round < 1 {
		round = 1
	}
	size := r.RoundSizes[(int(round)-1)%len(r.RoundSizes)]
	if size == 0 || size > MaxHandSize {
		return MaxHandSize
	}
	return size
}

// Partner returns the seat across the table.
func Partner(seat uint8) uint8 { return (seat + 2) % NumSeats }

// TeamOf returns the team index (0 for seats 0/2, 1 for seats 1/3).
func TeamOf(seat uint8) uint8 { return seat % 2 }
