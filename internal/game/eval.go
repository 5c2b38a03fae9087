package game

import (
	"fmt"

	poker "github.com/paulhankin/poker"
)

// HandRanker scores the best 5-card hand out of 7 cards. Higher scores beat
// lower ones; equal scores split the pot. The score's total order encodes
// standard hold'em category and kicker comparison.
type HandRanker interface {
	Rank7(cards [7]Card) (int16, error)
}

// LibraryRanker evaluates with github.com/paulhankin/poker.
type LibraryRanker struct{}

func (LibraryRanker) Rank7(cards [7]Card) (int16, error) {
	var hand [7]poker.Card
	for i, c := range cards {
		pc, err := toLibCard(c)
		if err != nil {
			return 0, err
		}
		hand[i] = pc
	}
	return poker.Eval7(&hand), nil
}

func toLibCard(c Card) (poker.Card, error) {
	var zero poker.Card
	var s poker.Suit
	switch c.Suit {
	case Clubs:
		s = poker.Club
	case Diamonds:
		s = poker.Diamond
	case Hearts:
		s = poker.Heart
	case Spades:
		s = poker.Spade
	default:
		return zero, fmt.Errorf("bad suit %d", c.Suit)
	}
	// Library ranks run 1..13 with Ace=1.
	r := poker.Rank(c.Rank)
	if c.Rank == Ace {
		r = poker.Rank(1)
	}
	card, err := poker.MakeCard(s, r)
	if err != nil {
		return zero, fmt.Errorf("bad card %s: %w", c, err)
	}
	return card, nil
}
