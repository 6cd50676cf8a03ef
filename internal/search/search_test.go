package search

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	. "github.com/matecheck/matecheck/internal/evaluation"
	. "github.com/matecheck/matecheck/internal/game"
	. "github.com/matecheck/matecheck/internal/generation"
	. "github.com/matecheck/matecheck/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legalMoves(p *Position, player Player) []Move {
	buffer := GetMovesBuffer()
	defer ReleaseMovesBuffer(buffer)

	GenerateLegalMoves(p, player, buffer)

	moves := make([]Move, len(*buffer))
	copy(moves, *buffer)
	return moves
}

func positionAfterMoves(t *testing.T, moves []string) (Position, Player) {
	p := InitialPosition()
	player := White
	for _, s := range moves {
		m, err := MoveFromString(s)
		require.True(t, IsNil(err), err)
		require.True(t, Contains(legalMoves(&p, player), m), s)
		p = p.ApplyMove(m)
		player = player.Other()
	}
	return p, player
}

// plainMinimax is the unpruned reference: pruning must never change the
// score.
func plainMinimax(p *Position, depth int, player Player) int {
	moves := legalMoves(p, player)

	if len(moves) == 0 {
		if KingIsInCheck(p, player) {
			if player == White {
				return -MateScore
			}
			return MateScore
		}
		return 0
	}

	if depth == 0 {
		return Evaluate(p)
	}

	best := -Inf
	if player == Black {
		best = Inf
	}
	for _, m := range moves {
		next := p.ApplyMove(m)
		score := plainMinimax(&next, depth-1, player.Other())
		if player == White && score > best || player == Black && score < best {
			best = score
		}
	}
	return best
}

func TestPruningMatchesPlainMinimax(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	searcher := NewSearcher(&SilentLogger, DefaultSearchOptions)

	positions := []Position{InitialPosition()}
	players := []Player{White}

	// Random playouts of varying length give a spread of middlegame and
	// endgame positions.
	for game := 0; game < 10; game++ {
		p := InitialPosition()
		player := White
		plies := 4 + r.Intn(40)
		for ply := 0; ply < plies; ply++ {
			moves := legalMoves(&p, player)
			if len(moves) == 0 {
				break
			}
			p = p.ApplyMove(moves[r.Intn(len(moves))])
			player = player.Other()
		}
		positions = append(positions, p)
		players = append(players, player)
	}

	for i := range positions {
		for depth := 0; depth <= 2; depth++ {
			expected := plainMinimax(&positions[i], depth, players[i])
			actual := searcher.Minimax(&positions[i], depth, -Inf, Inf, players[i])
			assert.Equal(t, expected, actual,
				fmt.Sprint("position ", i, " depth ", depth, "\n", positions[i].String()))
		}
	}
}

func TestPruningMatchesPlainMinimaxDeeper(t *testing.T) {
	searcher := NewSearcher(&SilentLogger, DefaultSearchOptions)

	p, player := positionAfterMoves(t, []string{"e2e4", "e7e5", "g1f3"})
	assert.Equal(t,
		plainMinimax(&p, 3, player),
		searcher.Minimax(&p, 3, -Inf, Inf, player))
}

func TestCheckmateScore(t *testing.T) {
	searcher := NewSearcher(&SilentLogger, DefaultSearchOptions)

	p, player := positionAfterMoves(t, []string{"f2f3", "e7e5", "g2g4", "d8h4"})
	require.Equal(t, White, player)

	// Mated side to move: the score counts against it at any depth,
	// dominating any material difference.
	for depth := 0; depth <= 3; depth++ {
		assert.Equal(t, -MateScore, searcher.Minimax(&p, depth, -Inf, Inf, White))
	}
}

func TestStalemateScore(t *testing.T) {
	searcher := NewSearcher(&SilentLogger, DefaultSearchOptions)

	p, err := PositionFromRows([8]string{
		"k.......",
		"..Q.....",
		".K......",
		"........",
		"........",
		"........",
		"........",
		"........",
	})
	require.True(t, IsNil(err), err)

	// White is up a queen, but the stalemated node is exactly 0.
	for depth := 0; depth <= 3; depth++ {
		assert.Equal(t, 0, searcher.Minimax(&p, depth, -Inf, Inf, Black))
	}
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	searcher := NewSearcher(&SilentLogger, DefaultSearchOptions)

	p, player := positionAfterMoves(t, []string{"f2f3", "e7e5", "g2g4"})
	require.Equal(t, Black, player)

	move, score := searcher.BestMove(&p, Black)
	require.True(t, move.HasValue())
	assert.Equal(t, "d8h4", move.Value().String())
	assert.Equal(t, -MateScore, score)
}

func TestBestMovePrefersMateOverMaterial(t *testing.T) {
	// White can grab the rook on h2 with the queen, but Qd8 is mate: the
	// cornered king's escape squares are covered by the white king.
	p, err := PositionFromRows([8]string{
		"k.......",
		"........",
		".K......",
		"........",
		"........",
		"........",
		"...Q...r",
		"........",
	})
	require.True(t, IsNil(err), err)

	searcher := NewSearcher(&SilentLogger, DefaultSearchOptions)
	move, score := searcher.BestMove(&p, White)

	require.True(t, move.HasValue())
	assert.Equal(t, "d2d8", move.Value().String())
	assert.Equal(t, MateScore, score)
}

func TestBestMoveCapturesCheckingQueen(t *testing.T) {
	// The black queen on a5 checks along the a5-e1 diagonal; capturing it
	// with the rook both resolves the check and wins the queen.
	p, err := PositionFromRows([8]string{
		"....k...",
		"........",
		"........",
		"q.......",
		"........",
		"........",
		"........",
		"R...K...",
	})
	require.True(t, IsNil(err), err)

	options, err := SearcherOptionsFromArgs("depth=2")
	require.True(t, IsNil(err), err)
	searcher := NewSearcher(&SilentLogger, options)

	move, _ := searcher.BestMove(&p, White)
	require.True(t, move.HasValue())
	assert.Equal(t, "a1a5", move.Value().String())
}

func TestBestMoveWithNoLegalMoves(t *testing.T) {
	searcher := NewSearcher(&SilentLogger, DefaultSearchOptions)

	p, player := positionAfterMoves(t, []string{"f2f3", "e7e5", "g2g4", "d8h4"})
	require.Equal(t, White, player)

	move, _ := searcher.BestMove(&p, White)
	assert.True(t, move.IsEmpty())
}

func TestBestMoveIsDeterministic(t *testing.T) {
	p, player := positionAfterMoves(t, []string{"e2e4", "e7e5"})

	first := Empty[Move]()
	for i := 0; i < 3; i++ {
		searcher := NewSearcher(&SilentLogger, DefaultSearchOptions)
		move, _ := searcher.BestMove(&p, player)
		require.True(t, move.HasValue())
		if first.IsEmpty() {
			first = move
		} else {
			assert.Equal(t, first.Value(), move.Value())
		}
	}
}

func TestSearcherOptionsFromArgs(t *testing.T) {
	options, err := SearcherOptionsFromArgs()
	assert.True(t, IsNil(err), err)
	assert.Equal(t, 3, options.Depth)

	options, err = SearcherOptionsFromArgs("depth=5")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, 5, options.Depth)

	options, err = SearcherOptionsFromArgs("maxtime=500ms")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, Some(500*time.Millisecond), options.MaxDuration)

	_, err = SearcherOptionsFromArgs("depth=0")
	assert.False(t, IsNil(err))

	_, err = SearcherOptionsFromArgs("bogus")
	assert.False(t, IsNil(err))
}
