package evaluation

import (
	. "github.com/matecheck/matecheck/internal/game"
	. "github.com/matecheck/matecheck/internal/helpers"
)

// Material values indexed by PieceType order (Rook, Knight, Bishop, King,
// Queen, Pawn).
var _pieceValues = [7]int{
	500,
	320,
	330,
	20000,
	900,
	100,
	0,
}

func PieceValue(t PieceType) int {
	return _pieceValues[t]
}

// Evaluate is the static score of a position: the material sum over all
// occupied cells, positive favoring White. Material only; the interesting
// behavior lives in the search.
func Evaluate(p *Position) int {
	score := 0
	for _, piece := range p.Board {
		if piece == XX {
			continue
		}
		value := _pieceValues[piece.PieceType()]
		if piece.Player() == White {
			score += value
		} else {
			score -= value
		}
	}
	return score
}
