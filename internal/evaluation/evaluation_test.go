package evaluation

import (
	"testing"

	. "github.com/matecheck/matecheck/internal/game"
	. "github.com/matecheck/matecheck/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceValues(t *testing.T) {
	assert.Equal(t, 100, PieceValue(Pawn))
	assert.Equal(t, 320, PieceValue(Knight))
	assert.Equal(t, 330, PieceValue(Bishop))
	assert.Equal(t, 500, PieceValue(Rook))
	assert.Equal(t, 900, PieceValue(Queen))
	assert.Equal(t, 20000, PieceValue(King))
}

func TestInitialPositionIsBalanced(t *testing.T) {
	p := InitialPosition()
	assert.Equal(t, 0, Evaluate(&p))
}

func TestCaptureShiftsScore(t *testing.T) {
	p := InitialPosition()

	// White wins a pawn out of thin air.
	withoutPawn := p
	withoutPawn.Board[BoardIndexFromString("e7")] = XX
	assert.Equal(t, 100, Evaluate(&withoutPawn))

	// Black wins a knight.
	withoutKnight := p
	withoutKnight.Board[BoardIndexFromString("b1")] = XX
	assert.Equal(t, -320, Evaluate(&withoutKnight))
}

func TestEvaluationIsPure(t *testing.T) {
	p, err := PositionFromRows([8]string{
		"....k...",
		"........",
		"..q.....",
		"........",
		"........",
		"........",
		"....P...",
		"....K...",
	})
	require.True(t, IsNil(err), err)

	first := Evaluate(&p)
	assert.Equal(t, 100-900, first)
	assert.Equal(t, first, Evaluate(&p))
}
