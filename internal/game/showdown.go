package game

// ResolvePot evaluates the eligible hands of one pot against the community
// cards and returns the winning seats in ascending seat order.
func ResolvePot(ranker HandRanker, hands []*Hand, community []Card, pot Pot) ([]int, error) {
	var winners []int
	var best int16
	for _, seat := range pot.Eligible {
		h := hands[seat]
		if h.Folded || len(h.Hole) != 2 {
			continue
		}
		var cards [7]Card
		cards[0] = h.Hole[0]
		cards[1] = h.Hole[1]
		copy(cards[2:], community)
		score, err := ranker.Rank7(cards)
		if err != nil {
			return nil, err
		}
		switch {
		case len(winners) == 0 || score > best:
			winners = winners[:0]
			winners = append(winners, seat)
			best = score
		case score == best:
			winners = append(winners, seat)
		}
	}
	return winners, nil
}

// SplitPot divides amount among winners, one share per winner aligned with the
// input order. The integer remainder goes entirely to the first winner so the
// full amount is always accounted for.
func SplitPot(amount int64, winners int) []int64 {
	if winners <= 0 {
		return nil
	}
	per := amount / int64(winners)
	rem := amount % int64(winners)
	shares := make([]int64, winners)
	for i := range shares {
		shares[i] = per
	}
	shares[0] += rem
	return shares
}
