package services

// Vote directions and per-browser vote states share the same encoding:
// -1 down, 0 none, +1 up.
const (
	VoteDown = -1
	VoteNone = 0
	VoteUp   = 1
)

// NextVoteState applies toggle semantics to a per-browser vote: pressing the
// held direction again clears it, pressing the other direction flips it, and
// pressing from neutral sets it. The returned delta is what gets added to the
// stored counter (newState - prev), so flips move the total by two.
func NextVoteState(prev, direction int) (state, delta int) {
	if prev == direction {
		return VoteNone, -prev
	}
	return direction, direction - prev
}
