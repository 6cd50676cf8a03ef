package generation

import (
	. "github.com/matecheck/matecheck/internal/game"
	. "github.com/matecheck/matecheck/internal/helpers"
)

// SquareIsAttacked reports whether any of `by`'s pieces pseudo-legally
// reaches target. Pseudo-legal reach is the right notion here: a pinned
// attacker still delivers check.
func SquareIsAttacked(p *Position, target int, by Player) bool {
	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)

	for i, piece := range p.Board {
		if piece == XX || piece.Player() != by {
			continue
		}

		*moves = (*moves)[:0]
		GeneratePieceMoves(p, i, moves)
		for _, m := range *moves {
			if m.EndIndex == target {
				return true
			}
		}
	}
	return false
}

// KingIsInCheck reports whether player's king is attacked. A missing king
// can only happen inside a simulated line that captured it, so it reports
// check (fail-closed).
func KingIsInCheck(p *Position, player Player) bool {
	king := p.KingIndex(player)
	if king.IsEmpty() {
		return true
	}
	return SquareIsAttacked(p, king.Value(), player.Other())
}
