package search

import (
	"strconv"
	"strings"
	"time"

	. "github.com/matecheck/matecheck/internal/evaluation"
	. "github.com/matecheck/matecheck/internal/game"
	. "github.com/matecheck/matecheck/internal/generation"
	. "github.com/matecheck/matecheck/internal/helpers"
)

// MateScore dominates any material difference (a full board is under
// 24000 centipawns of material per side plus kings), so the search always
// prefers delivering checkmate and avoids being checkmated over any
// material swing.
const MateScore = 1000000

// Inf bounds the alpha-beta window above every reachable score.
const Inf = 1 << 30

type SearcherOptions struct {
	// Depth is the number of plies explored from the root.
	Depth int

	// MaxDuration optionally stops the root loop early, keeping the best
	// fully searched move so far. Subtree results stay exact; only the
	// number of root moves considered shrinks.
	MaxDuration Optional[time.Duration]
}

var DefaultSearchOptions = SearcherOptions{
	Depth: 3,
}

func SearcherOptionsFromArgs(args ...string) (SearcherOptions, Error) {
	options := DefaultSearchOptions

	for _, arg := range args {
		if strings.HasPrefix(arg, "depth=") {
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "depth="))
			if err != nil {
				return options, Wrap(err)
			}
			if n < 1 {
				return options, Errorf("depth must be positive: %v", n)
			}
			options.Depth = n
		} else if strings.HasPrefix(arg, "maxtime=") {
			d, err := time.ParseDuration(strings.TrimPrefix(arg, "maxtime="))
			if err != nil {
				return options, Wrap(err)
			}
			options.MaxDuration = Some(d)
		} else {
			return options, Errorf("unknown option: %s", arg)
		}
	}

	return options, NilError
}

type Searcher struct {
	Logger Logger

	options  SearcherOptions
	deadline Optional[time.Time]

	DebugTotalEvaluations int
}

func NewSearcher(logger Logger, options SearcherOptions) Searcher {
	return Searcher{
		Logger:  logger,
		options: options,
	}
}

func (s *Searcher) outOfTime() bool {
	return s.deadline.HasValue() && time.Now().After(s.deadline.Value())
}

// Minimax returns the White-oriented score of the position searched depth
// plies ahead with player to move, alpha-beta pruned. Pruning only skips
// subtrees that cannot change the value, so the result equals a full
// minimax at the same depth.
func (s *Searcher) Minimax(p *Position, depth int, alpha int, beta int, player Player) int {
	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)

	GenerateLegalMoves(p, player, moves)

	if len(*moves) == 0 {
		if KingIsInCheck(p, player) {
			// Checkmate counts against the side to move.
			if player == White {
				return -MateScore
			}
			return MateScore
		}
		// Stalemate is a draw.
		return 0
	}

	if depth == 0 {
		s.DebugTotalEvaluations++
		return Evaluate(p)
	}

	if player == White {
		best := -Inf
		for _, m := range *moves {
			next := p.ApplyMove(m)
			score := s.Minimax(&next, depth-1, alpha, beta, Black)
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := Inf
	for _, m := range *moves {
		next := p.ApplyMove(m)
		score := s.Minimax(&next, depth-1, alpha, beta, White)
		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

// BestMove runs the search for every legal root move and returns the one
// whose resulting score is best for player, first found winning ties.
// Empty means player has no legal moves; the caller should already have
// detected the end of the game.
func (s *Searcher) BestMove(p *Position, player Player) (Optional[Move], int) {
	if s.options.MaxDuration.HasValue() {
		s.deadline = Some(time.Now().Add(s.options.MaxDuration.Value()))
		defer func() { s.deadline = Empty[time.Time]() }()
	}

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)

	GenerateLegalMoves(p, player, moves)
	if len(*moves) == 0 {
		return Empty[Move](), 0
	}

	best := Empty[Move]()
	bestScore := -Inf
	if player == Black {
		bestScore = Inf
	}

	for _, m := range *moves {
		next := p.ApplyMove(m)
		// Each root move gets a fresh full window.
		score := s.Minimax(&next, s.options.Depth-1, -Inf, Inf, player.Other())

		if player == White && score > bestScore ||
			player == Black && score < bestScore {
			bestScore = score
			best = Some(m)
		}

		if s.outOfTime() {
			break
		}
	}

	s.Logger.Println(
		"searched", len(*moves), "moves",
		"to depth", s.options.Depth,
		"- total evals", s.DebugTotalEvaluations,
		"- best move", best.Value().String(),
		"- score", bestScore)

	return best, bestScore
}
