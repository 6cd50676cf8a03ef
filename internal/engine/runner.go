package engine

import (
	. "github.com/matecheck/matecheck/internal/game"
	. "github.com/matecheck/matecheck/internal/generation"
	. "github.com/matecheck/matecheck/internal/helpers"
	"github.com/matecheck/matecheck/internal/search"
)

type GameStatus int

const (
	InProgress GameStatus = iota
	Checkmate
	Stalemate
)

func (s GameStatus) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "invalid"
}

// Runner is the boundary the CLI, the web server, and the tests talk to.
// Moves cross it in coordinate notation (a–h file, 1–8 rank, optional
// q/r/b/n promotion letter); translation to board indices happens here,
// never inside the core.
type Runner struct {
	Logger Logger

	position      Position
	player        Player
	history       []Move
	searchOptions search.SearcherOptions
}

type RunnerOption func(*Runner)

func WithLogger(logger Logger) RunnerOption {
	return func(r *Runner) {
		r.Logger = logger
	}
}

func WithSearchOptions(options search.SearcherOptions) RunnerOption {
	return func(r *Runner) {
		r.searchOptions = options
	}
}

// NewRunner starts a game from the standard initial position, White to
// move.
func NewRunner(opts ...RunnerOption) Runner {
	r := Runner{
		Logger:        &SilentLogger,
		position:      InitialPosition(),
		player:        White,
		searchOptions: search.DefaultSearchOptions,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *Runner) Position() Position {
	return r.position
}

func (r *Runner) Player() Player {
	return r.player
}

func (r *Runner) Reset() {
	r.position = InitialPosition()
	r.player = White
	r.history = nil
}

// MoveHistory returns the moves performed so far, in coordinate notation.
func (r *Runner) MoveHistory() []string {
	return MapSlice(r.history, func(m Move) string {
		return m.String()
	})
}

func (r *Runner) legalMoves() []Move {
	buffer := GetMovesBuffer()
	defer ReleaseMovesBuffer(buffer)

	GenerateLegalMoves(&r.position, r.player, buffer)

	moves := make([]Move, len(*buffer))
	copy(moves, *buffer)
	return moves
}

func (r *Runner) LegalMoveStrings() []string {
	return MapSlice(r.legalMoves(), func(m Move) string {
		return m.String()
	})
}

// MovesForSelection returns the legal destinations of the piece on the
// given cell, for highlighting in a UI.
func (r *Runner) MovesForSelection(selection string) ([]string, Error) {
	loc, err := FileRankFromString(selection)
	if !IsNil(err) {
		return nil, err
	}
	start := IndexFromFileRank(loc)

	moves := FilterSlice(r.legalMoves(), func(m Move) bool {
		return m.StartIndex == start
	})
	return MapSlice(moves, func(m Move) string {
		return StringFromBoardIndex(m.EndIndex)
	}), NilError
}

func (r *Runner) IsInCheck() bool {
	return KingIsInCheck(&r.position, r.player)
}

// GameStatus disambiguates an empty legal-move list via check.
func (r *Runner) GameStatus() GameStatus {
	if HasLegalMoves(&r.position, r.player) {
		return InProgress
	}
	if r.IsInCheck() {
		return Checkmate
	}
	return Stalemate
}

// Winner is only meaningful once GameStatus() == Checkmate.
func (r *Runner) Winner() Player {
	return r.player.Other()
}

// NeedsPromotion reports whether the given move string names a pawn move
// onto the last rank, so a UI can prompt for the promotion piece.
func (r *Runner) NeedsPromotion(s string) bool {
	m, err := MoveFromString(s)
	if !IsNil(err) {
		return false
	}
	return r.position.IsPromotion(m)
}

func (r *Runner) performMove(m Move) {
	r.position = r.position.ApplyMove(m)
	r.player = r.player.Other()
	r.history = append(r.history, m)
}

// PerformMoveFromString accepts a move in coordinate notation. Rejection
// is a lookup-miss against the legal move list: an illegal move leaves
// the position untouched and the caller re-prompts. A promotion move
// without a promotion letter defaults to a queen.
func (r *Runner) PerformMoveFromString(s string) Error {
	requested, err := MoveFromString(s)
	if !IsNil(err) {
		return err
	}

	legal := FindInSlice(r.legalMoves(), func(m Move) bool {
		return m.Matches(requested)
	})
	if legal.IsEmpty() {
		return Errorf("move %v is not legal", s)
	}

	m := legal.Value()
	if requested.Promotion.HasValue() && r.position.IsPromotion(m) {
		m.Promotion = requested.Promotion
	}

	r.performMove(m)
	return NilError
}

// Rewind undoes the last num moves by replaying history from the initial
// position; positions are values, there is no undo bookkeeping to unwind.
func (r *Runner) Rewind(num int) Error {
	if num < 0 {
		return Errorf("cannot rewind %v moves", num)
	}

	replay := r.history[:len(r.history)-MinInt(num, len(r.history))]
	r.Reset()
	for _, m := range replay {
		r.performMove(m)
	}
	return NilError
}

// Search picks a move for the side to move. Empty means the game is over;
// callers should have checked GameStatus first.
func (r *Runner) Search() (Optional[string], Error) {
	searcher := search.NewSearcher(r.Logger, r.searchOptions)

	move, score := searcher.BestMove(&r.position, r.player)
	if move.IsEmpty() {
		return Empty[string](), NilError
	}

	m := move.Value()
	if r.position.IsPromotion(m) && m.Promotion.IsEmpty() {
		m.Promotion = Some(Queen)
	}

	r.Logger.Println("search chose", m.String(), "score", score)
	return Some(m.String()), NilError
}

// PerformSearchMove runs Search and plays the result.
func (r *Runner) PerformSearchMove() (Optional[string], Error) {
	move, err := r.Search()
	if !IsNil(err) || move.IsEmpty() {
		return Empty[string](), err
	}
	err = r.PerformMoveFromString(move.Value())
	if !IsNil(err) {
		return Empty[string](), err
	}
	return move, NilError
}
