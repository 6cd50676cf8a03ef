package generation

import (
	. "github.com/matecheck/matecheck/internal/game"
	. "github.com/matecheck/matecheck/internal/helpers"
)

// CountPositions walks the legal move tree to the given depth and counts
// leaves. Used by the perft command and the movegen tests.
func CountPositions(p *Position, player Player, depth int) int {
	if depth == 0 {
		return 1
	}

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)

	GenerateLegalMoves(p, player, moves)
	if depth == 1 {
		return len(*moves)
	}

	total := 0
	for _, m := range *moves {
		next := p.ApplyMove(m)
		total += CountPositions(&next, player.Other(), depth-1)
	}
	return total
}
