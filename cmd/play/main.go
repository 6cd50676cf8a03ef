package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/matecheck/matecheck/internal/engine"
	. "github.com/matecheck/matecheck/internal/helpers"
	"github.com/matecheck/matecheck/internal/search"
	"github.com/pkg/profile"
)

func promptPromotion(scanner *bufio.Scanner) string {
	for {
		fmt.Print("promote to (q/r/b/n): ")
		if !scanner.Scan() {
			os.Exit(0)
		}
		input := strings.TrimSpace(scanner.Text())
		if len(input) != 1 {
			continue
		}
		if _, err := PromotionFromChar(input[0]); IsNil(err) {
			return strings.ToLower(input)
		}
	}
}

func announceResult(r *engine.Runner) {
	if r.GameStatus() == engine.Checkmate {
		fmt.Printf("checkmate! %v wins.\n", r.Winner())
	} else {
		fmt.Println("drawn by stalemate.")
	}
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
		}
	}()

	args := os.Args[1:]

	if Contains(args, "profile") {
		p := profile.Start(profile.ProfilePath("data/CmdPlayMain"))
		defer p.Stop()
	}
	args = FilterSlice(args, func(arg string) bool {
		return arg != "profile"
	})

	searchOptions, err := search.SearcherOptionsFromArgs(args...)
	if !IsNil(err) {
		panic(err)
	}

	r := engine.NewRunner(
		engine.WithSearchOptions(searchOptions),
		engine.WithLogger(FuncLogger(func(s string) {
			fmt.Fprint(os.Stderr, s)
		})),
	)

	fmt.Println("you play white. enter moves like e2e4 (e7e8q to promote); quit to exit.")
	fmt.Println("no castling, no en-passant.")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println()
		fmt.Println(r.Position().Board.Unicode())

		if r.GameStatus() != engine.InProgress {
			announceResult(&r)
			break
		}

		if r.Player() == White {
			fmt.Print("your move: ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "quit" {
				break
			}

			if r.NeedsPromotion(input) && len(strings.Join(strings.Fields(input), "")) == 4 {
				input += promptPromotion(scanner)
			}

			err := r.PerformMoveFromString(input)
			if !IsNil(err) {
				fmt.Println("illegal move, try again (e.g. e2e4)")
				continue
			}
		} else {
			fmt.Println("thinking...")
			move, err := r.PerformSearchMove()
			if !IsNil(err) {
				panic(err)
			}
			if move.IsEmpty() {
				announceResult(&r)
				break
			}
			fmt.Println("black plays", move.Value())
		}
	}
}
