package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/matecheck/matecheck/internal/engine"
	. "github.com/matecheck/matecheck/internal/helpers"
	"github.com/matecheck/matecheck/internal/search"
)

type UpdateToWeb struct {
	Board         string   `json:"board"`
	LastMove      string   `json:"lastMove"`
	Selection     string   `json:"selection"`
	PossibleMoves []string `json:"possibleMoves"`
	Player        string   `json:"player"`
	Status        string   `json:"status"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.LastMove, ", ", u.Selection, ", ", u.PossibleMoves, ", ", u.Status)
}

type MessageFromWeb struct {
	Selection *string `json:"selection"`
	Move      *string `json:"move"`
	Rewind    *int    `json:"rewind"`
	Reset     *bool   `json:"reset"`
	Depth     *int    `json:"depth"`
}

func (u MessageFromWeb) String() string {
	if u.Selection != nil {
		return fmt.Sprint("MessageFromWeb Selection: ", *u.Selection)
	}
	if u.Move != nil {
		return fmt.Sprint("MessageFromWeb Move: ", *u.Move)
	}
	if u.Rewind != nil {
		return fmt.Sprint("MessageFromWeb Rewind: ", *u.Rewind)
	}
	if u.Reset != nil {
		return fmt.Sprint("MessageFromWeb Reset: ", *u.Reset)
	}
	if u.Depth != nil {
		return fmt.Sprint("MessageFromWeb Depth: ", *u.Depth)
	}
	return "MessageFromWeb unknown"
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	var upgrader = websocket.Upgrader{}

	// The human plays White over the socket; the engine answers as Black.
	var ws = func(w http.ResponseWriter, req *http.Request) {
		c, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			panic(err)
		}
		defer c.Close()

		logger := FuncLogger(func(message string) {
			log.Print("game: ", message)
		})

		runner := engine.NewRunner(engine.WithLogger(logger))

		var finalizeUpdate = func(update UpdateToWeb) {
			update.Board = runner.Position().Board.String()
			update.Player = runner.Player().String()
			update.Status = runner.GameStatus().String()
			if history := runner.MoveHistory(); len(history) > 0 {
				update.LastMove = history[len(history)-1]
			}

			logger.Println("sending", update)
			bytes, err := json.Marshal(update)
			if err != nil {
				logger.Println("update: json marshal: ", err)
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, bytes); err != nil {
				logger.Println("websocket: ", err)
			}
		}

		var performEngineMove = func() {
			if runner.Player() != Black || runner.GameStatus() != engine.InProgress {
				return
			}
			move, err := runner.PerformSearchMove()
			if !IsNil(err) {
				logger.Println("search: ", err)
				return
			}
			if move.HasValue() {
				logger.Println("engine played", move.Value())
			}
		}

		var handleMessageFromWeb = func(bytes []byte) {
			var message MessageFromWeb
			if err := json.Unmarshal(bytes, &message); err != nil {
				logger.Println("handleMessageFromWeb: json unmarshal: ", err)
				return
			}
			logger.Println("received", message)

			var update UpdateToWeb

			if message.Selection != nil {
				if *message.Selection != "" {
					update.Selection = *message.Selection
					result, err := runner.MovesForSelection(*message.Selection)
					if !IsNil(err) {
						logger.Println("moves for: ", *message.Selection, err)
					}
					update.PossibleMoves = result
				}
			} else if message.Move != nil {
				err := runner.PerformMoveFromString(*message.Move)
				if !IsNil(err) {
					logger.Println("perform: ", *message.Move, err)
				} else {
					performEngineMove()
				}
			} else if message.Rewind != nil {
				err := runner.Rewind(*message.Rewind)
				if !IsNil(err) {
					logger.Println("rewind: ", *message.Rewind, err)
				}
			} else if message.Reset != nil {
				runner.Reset()
			} else if message.Depth != nil {
				options, err := search.SearcherOptionsFromArgs(fmt.Sprintf("depth=%v", *message.Depth))
				if !IsNil(err) {
					logger.Println("depth: ", *message.Depth, err)
				} else {
					engine.WithSearchOptions(options)(&runner)
				}
			}

			finalizeUpdate(update)
		}

		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				logger.Printf("disconnect: %v", err)
				break
			}
			handleMessageFromWeb(message)
		}
	}

	port := 8002
	for _, arg := range os.Args[1:] {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		}
	}

	log.Println("serving at", port)

	router := mux.NewRouter()
	router.HandleFunc("/ws", ws)
	err := http.ListenAndServe(fmt.Sprintf(":%v", port), router)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
