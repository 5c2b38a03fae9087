package game

import "fmt"

// NextNonEmptySeat scans forward from start, wrapping, and returns the first
// occupied seat. If every seat is empty it returns start; callers must treat
// that as a fatal configuration problem, not continue silently.
func NextNonEmptySeat(players []*Player, start, seatCount int) int {
	if seatCount <= 0 {
		return start
	}
	pos := ((start % seatCount) + seatCount) % seatCount
	for i := 0; i < seatCount; i++ {
		if pos < len(players) && !players[pos].Empty() {
			return pos
		}
		pos = (pos + 1) % seatCount
	}
	return start
}

// NextButtonPosition returns the next occupied seat after the current button.
func NextButtonPosition(players []*Player, button, seatCount int) int {
	return NextNonEmptySeat(players, (button+1)%seatCount, seatCount)
}

// PositionLabel names a seat relative to the button the way players talk
// about it at the table.
func PositionLabel(seat, button, seatCount int) string {
	offset := ((seat - button) + seatCount) % seatCount
	switch {
	case offset == 0:
		return "Button (Dealer)"
	case offset == 1:
		return "Small Blind"
	case offset == 2:
		return "Big Blind"
	case offset == 3:
		return "Under the Gun (UTG)"
	case offset == 4 && seatCount >= 6:
		return "UTG+1"
	case offset == seatCount-1:
		return "Cutoff"
	default:
		return fmt.Sprintf("Middle Position (MP%d)", offset-2)
	}
}
