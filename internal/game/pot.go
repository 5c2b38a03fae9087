package game

import "sort"

// ComputePots builds the pot tiers for a round from cumulative contributions.
//
// Tier boundaries are the distinct contributions of non-folded all-in hands,
// ascending. Each tier's amount takes every hand's contribution clamped to
// (prevTier, tier] — folded hands fund a tier but are never eligible for it —
// so the sum of all pots always equals the sum of all contributions. Whatever
// remains above the highest all-in tier forms a final pot eligible only to the
// non-folded hands that contributed beyond that tier. With no all-in hands a
// single main pot covers everything.
func ComputePots(hands []*Hand) []Pot {
	tierSet := map[int64]bool{}
	for _, h := range hands {
		if h.AllIn && !h.Folded && h.Contributed > 0 {
			tierSet[h.Contributed] = true
		}
	}

	if len(tierSet) == 0 {
		var main Pot
		for _, h := range hands {
			main.Amount += h.Contributed
			if !h.Folded {
				main.Eligible = append(main.Eligible, h.Seat)
			}
		}
		if main.Amount == 0 {
			return nil
		}
		return []Pot{main}
	}

	tiers := make([]int64, 0, len(tierSet))
	for t := range tierSet {
		tiers = append(tiers, t)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })

	var pots []Pot
	prev := int64(0)
	for _, tier := range tiers {
		var pot Pot
		for _, h := range hands {
			c := h.Contributed - prev
			if c > tier-prev {
				c = tier - prev
			}
			if c > 0 {
				pot.Amount += c
			}
			if !h.Folded && h.Contributed >= tier {
				pot.Eligible = append(pot.Eligible, h.Seat)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = tier
	}

	var rest Pot
	for _, h := range hands {
		if c := h.Contributed - prev; c > 0 {
			rest.Amount += c
			if !h.Folded {
				rest.Eligible = append(rest.Eligible, h.Seat)
			}
		}
	}
	if rest.Amount > 0 {
		pots = append(pots, rest)
	}
	return pots
}
