package domain

// LeftNeighbor returns the seat to the left of seat (previous in the circle).
func LeftNeighbor(seat int) int {
	return (seat + SeatCount - 1) % SeatCount
}

// RightNeighbor returns the seat to the right of seat (next in the circle).
func RightNeighbor(seat int) int {
	return (seat + 1) % SeatCount
}

// Neighbor returns the seat on the given side of seat.
func Neighbor(seat int, side Side) int {
	if side == SideLeft {
		return LeftNeighbor(seat)
	}
	return RightNeighbor(seat)
}

// ValidSeat reports whether seat addresses a table position.
func ValidSeat(seat int) bool {
	return seat >= 0 && seat < SeatCount
}

// AuthoritySeat returns the lowest seat not controlled by a bot, or -1 if every seat is a bot.
// That seat drives bot submissions for the table.
func AuthoritySeat(bots [SeatCount]bool) int {
	for i, isBot := range bots {
		if !isBot {
			return i
		}
	}
	return -1
}

// BotMask packs bot flags into a bit mask, seat 0 in the lowest bit.
func BotMask(bots [SeatCount]bool) uint32 {
	var mask uint32
	for i, isBot := range bots {
		if isBot {
			mask |= 1 << i
		}
	}
	return mask
}

// BotsFromMask is the inverse of BotMask.
func BotsFromMask(mask uint32) [SeatCount]bool {
	var bots [SeatCount]bool
	for i := range bots {
		bots[i] = mask&(1<<i) != 0
	}
	return bots
}

// BotsForCount marks the last n seats as bots, as room hosts fill from the back.
func BotsForCount(n int) [SeatCount]bool {
	var bots [SeatCount]bool
	for i := SeatCount - n; i < SeatCount; i++ {
		if i >= 0 {
			bots[i] = true
		}
	}
	return bots
}
