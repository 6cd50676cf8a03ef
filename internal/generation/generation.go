package generation

import (
	. "github.com/matecheck/matecheck/internal/game"
	. "github.com/matecheck/matecheck/internal/helpers"
)

// MaxMoves bounds the move buffers. A legal chess position tops out well
// under this; hitting the bound indicates a sizing bug, not a normal
// outcome, so generation truncates rather than reallocates.
const MaxMoves = 256

var GetMovesBuffer, ReleaseMovesBuffer, StatsMoveBuffer = CreatePool(
	func() []Move { return make([]Move, 0, MaxMoves) },
	func(t *[]Move) { *t = (*t)[:0] })

func addMove(moves *[]Move, m Move) {
	if len(*moves) < cap(*moves) {
		*moves = append(*moves, m)
	}
}

var knightOffsets = [8][2]int{
	{-1, -2}, {1, -2}, {-2, -1}, {2, -1},
	{-2, 1}, {2, 1}, {-1, 2}, {1, 2},
}

var kingOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

var rookDirs = [4][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
}

var bishopDirs = [4][2]int{
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func inBounds(file int, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

func index(file int, rank int) int {
	return rank*8 + file
}

func pawnStartRank(player Player) int {
	if player == White {
		return 1
	}
	return 6
}

func pawnStep(player Player) int {
	if player == White {
		return 1
	}
	return -1
}

func generatePawnMoves(p *Position, start int, player Player, moves *[]Move) {
	loc := FileRankFromIndex(start)
	file, rank := int(loc.File), int(loc.Rank)
	step := pawnStep(player)

	// Single advance, and the double advance when both cells are empty.
	if inBounds(file, rank+step) && p.Board[index(file, rank+step)] == XX {
		addMove(moves, Move{StartIndex: start, EndIndex: index(file, rank+step), Promotion: Empty[PieceType]()})

		if rank == pawnStartRank(player) &&
			inBounds(file, rank+2*step) && p.Board[index(file, rank+2*step)] == XX {
			addMove(moves, Move{StartIndex: start, EndIndex: index(file, rank+2*step), Promotion: Empty[PieceType]()})
		}
	}

	for _, df := range [2]int{-1, 1} {
		if !inBounds(file+df, rank+step) {
			continue
		}
		target := p.Board[index(file+df, rank+step)]
		if target != XX && target.Player() != player {
			addMove(moves, Move{StartIndex: start, EndIndex: index(file+df, rank+step), Promotion: Empty[PieceType]()})
		}
	}
}

func generateJumpMoves(p *Position, start int, player Player, offsets [8][2]int, moves *[]Move) {
	loc := FileRankFromIndex(start)
	for _, offset := range offsets {
		file, rank := int(loc.File)+offset[0], int(loc.Rank)+offset[1]
		if !inBounds(file, rank) {
			continue
		}
		target := p.Board[index(file, rank)]
		if target == XX || target.Player() != player {
			addMove(moves, Move{StartIndex: start, EndIndex: index(file, rank), Promotion: Empty[PieceType]()})
		}
	}
}

func generateWalkMoves(p *Position, start int, player Player, dirs [4][2]int, moves *[]Move) {
	loc := FileRankFromIndex(start)
	for _, dir := range dirs {
		file, rank := int(loc.File)+dir[0], int(loc.Rank)+dir[1]
		for inBounds(file, rank) {
			target := p.Board[index(file, rank)]
			if target == XX {
				addMove(moves, Move{StartIndex: start, EndIndex: index(file, rank), Promotion: Empty[PieceType]()})
			} else {
				if target.Player() != player {
					addMove(moves, Move{StartIndex: start, EndIndex: index(file, rank), Promotion: Empty[PieceType]()})
				}
				break
			}
			file += dir[0]
			rank += dir[1]
		}
	}
}

// GeneratePieceMoves appends every pseudo-legal destination for the piece
// at start: geometry and occupancy only, not filtered for leaving the own
// king in check. Promotions are left to ApplyMove; the generated move
// carries no promotion choice.
func GeneratePieceMoves(p *Position, start int, moves *[]Move) {
	piece := p.Board[start]
	if piece == XX {
		return
	}
	player := piece.Player()

	switch piece.PieceType() {
	case Pawn:
		generatePawnMoves(p, start, player, moves)
	case Knight:
		generateJumpMoves(p, start, player, knightOffsets, moves)
	case King:
		generateJumpMoves(p, start, player, kingOffsets, moves)
	case Rook:
		generateWalkMoves(p, start, player, rookDirs, moves)
	case Bishop:
		generateWalkMoves(p, start, player, bishopDirs, moves)
	case Queen:
		generateWalkMoves(p, start, player, rookDirs, moves)
		generateWalkMoves(p, start, player, bishopDirs, moves)
	}
}

// GeneratePseudoMoves appends pseudo-legal moves for every one of
// player's pieces, in board-index order.
func GeneratePseudoMoves(p *Position, player Player, moves *[]Move) {
	for i, piece := range p.Board {
		if piece == XX || piece.Player() != player {
			continue
		}
		GeneratePieceMoves(p, i, moves)
	}
}
