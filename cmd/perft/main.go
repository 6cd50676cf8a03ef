package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	. "github.com/matecheck/matecheck/internal/game"
	. "github.com/matecheck/matecheck/internal/generation"
	. "github.com/matecheck/matecheck/internal/helpers"
	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"
)

// Counts leaf positions of the legal move tree from the starting
// position, split per root move. Useful both as a movegen correctness
// check and as a throughput benchmark.
func main() {
	depth := 4

	args := os.Args[1:]

	if Contains(args, "profile") {
		p := profile.Start(profile.ProfilePath("data/CmdPerftMain"))
		defer p.Stop()
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "depth=") {
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "depth="))
			if err != nil || n < 1 {
				fmt.Fprintln(os.Stderr, "invalid depth:", arg)
				os.Exit(1)
			}
			depth = n
		}
	}

	position := InitialPosition()

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)
	GenerateLegalMoves(&position, White, moves)

	bar := progressbar.Default(int64(len(*moves)), fmt.Sprint("perft ", depth))

	start := time.Now()
	total := 0
	perMove := make([]string, 0, len(*moves))

	for _, m := range *moves {
		next := position.ApplyMove(m)
		count := CountPositions(&next, Black, depth-1)
		total += count
		perMove = append(perMove, fmt.Sprintf("%v: %v", m.String(), humanize.Comma(int64(count))))
		_ = bar.Add(1)
	}
	_ = bar.Close()

	elapsed := time.Since(start)

	for _, line := range perMove {
		fmt.Println(line)
	}
	fmt.Println("total:", humanize.Comma(int64(total)),
		"in", elapsed.Round(time.Millisecond),
		"-", humanize.Comma(int64(float64(total)/elapsed.Seconds())), "positions/s")
}
