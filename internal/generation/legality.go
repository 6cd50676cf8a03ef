package generation

import (
	. "github.com/matecheck/matecheck/internal/game"
	. "github.com/matecheck/matecheck/internal/helpers"
)

// GenerateLegalMoves appends every move for player that is pseudo-legal
// and does not leave player's own king attacked. Each candidate is tried
// on a full copy of the position; ApplyMove promotes to a queen by
// default, which is enough for the check test since the promotion choice
// never changes whether the mover's king is attacked from this move.
func GenerateLegalMoves(p *Position, player Player, moves *[]Move) {
	pseudo := GetMovesBuffer()
	defer ReleaseMovesBuffer(pseudo)

	GeneratePseudoMoves(p, player, pseudo)

	for _, m := range *pseudo {
		next := p.ApplyMove(m)
		if KingIsInCheck(&next, player) {
			continue
		}
		addMove(moves, m)
	}
}

// HasLegalMoves is the end-of-game probe: false means checkmate or
// stalemate depending on KingIsInCheck.
func HasLegalMoves(p *Position, player Player) bool {
	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)

	GenerateLegalMoves(p, player, moves)
	return len(*moves) > 0
}
