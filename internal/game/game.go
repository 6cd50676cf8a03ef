package game

import (
	. "github.com/matecheck/matecheck/internal/helpers"
)

// Position is a value type: one board snapshot. Simulation during search
// copies the whole position instead of tracking undo state, so sibling
// branches never alias each other. The side to move is threaded through
// every operation as a parameter rather than stored here.
type Position struct {
	Board BoardArray
}

var _initialRows = [8]string{
	"rnbqkbnr",
	"pppppppp",
	"........",
	"........",
	"........",
	"........",
	"PPPPPPPP",
	"RNBQKBNR",
}

// InitialPosition returns the standard starting layout.
func InitialPosition() Position {
	p, err := PositionFromRows(_initialRows)
	if !IsNil(err) {
		panic(err)
	}
	return p
}

// PositionFromRows builds a position from eight rows of piece letters,
// rows[0] being rank 8 and '.' marking an empty cell. Uppercase is White.
func PositionFromRows(rows [8]string) (Position, Error) {
	p := Position{}
	for i, row := range rows {
		if len(row) != 8 {
			return Position{}, Errorf("invalid row %v: %v", i, row)
		}
		rank := 7 - i
		for file, c := range row {
			if c == '.' {
				continue
			}
			piece, err := PieceFromString(c)
			if !IsNil(err) {
				return Position{}, err
			}
			p.Board[rank*8+file] = piece
		}
	}
	return p, NilError
}

func (p Position) PieceAt(index int) Piece {
	return p.Board[index]
}

func (p Position) String() string {
	return p.Board.String()
}

// PromotionRank is the rank index a pawn must reach to promote.
func PromotionRank(player Player) Rank {
	if player == White {
		return 7
	}
	return 0
}

// IsPromotion reports whether moving the piece at m.StartIndex would end
// on the farthest rank for its side as a pawn.
func (p *Position) IsPromotion(m Move) bool {
	piece := p.Board[m.StartIndex]
	if piece.PieceType() != Pawn {
		return false
	}
	return FileRankFromIndex(m.EndIndex).Rank == PromotionRank(piece.Player())
}

// ApplyMove returns the position after m. The receiver is unchanged; the
// copy is the backtracking mechanism, there is no undo. A pawn reaching
// the last rank becomes the requested promotion piece, defaulting to a
// queen when the move carries no choice.
func (p Position) ApplyMove(m Move) Position {
	mover := p.Board[m.StartIndex]
	p.Board[m.StartIndex] = XX

	if mover.PieceType() == Pawn && FileRankFromIndex(m.EndIndex).Rank == PromotionRank(mover.Player()) {
		promotion := Queen
		if m.Promotion.HasValue() && m.Promotion.Value().IsValid() {
			promotion = m.Promotion.Value()
		}
		p.Board[m.EndIndex] = PieceForPlayer[mover.Player()][promotion]
	} else {
		p.Board[m.EndIndex] = mover
	}

	return p
}

// KingIndex finds player's king, empty if it has been captured in a
// simulated line.
func (p *Position) KingIndex(player Player) Optional[int] {
	king := PieceForPlayer[player][King]
	for i, piece := range p.Board {
		if piece == king {
			return Some(i)
		}
	}
	return Empty[int]()
}
