// Package uci implements a Universal Chess Interface front end for the
// engine, plus a few debugging commands.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/game"
)

const maxDepth = 8

// UCI implements the Universal Chess Interface protocol.
// Searches run synchronously: "go" blocks until bestmove is written.
type UCI struct {
	engine *engine.Engine
	game   *game.State
	cache  *game.StatusCache
	depth  int

	out io.Writer
	log zerolog.Logger
}

// Option configures the protocol handler.
type Option func(*UCI)

// WithDepth sets the default search depth for "go" without a depth.
func WithDepth(depth int) Option {
	return func(u *UCI) {
		u.depth = depth
	}
}

// WithStatusCache shares a status cache between the games started by
// "position" and "ucinewgame".
func WithStatusCache(c *game.StatusCache) Option {
	return func(u *UCI) {
		u.cache = c
	}
}

// WithLogger sets the diagnostic logger. Protocol output always goes to
// the writer passed to Run.
func WithLogger(l zerolog.Logger) Option {
	return func(u *UCI) {
		u.log = l
	}
}

// New creates a new UCI protocol handler.
func New(eng *engine.Engine, opts ...Option) *UCI {
	u := &UCI{
		engine: eng,
		depth:  engine.DefaultDepth,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.game = u.newGame()
	return u
}

func (u *UCI) gameOptions() []game.Option {
	if u.cache == nil {
		return nil
	}
	return []game.Option{game.WithStatusCache(u.cache)}
}

func (u *UCI) newGame() *game.State {
	return game.New(u.gameOptions()...)
}

// Game returns the current game.
func (u *UCI) Game() *game.State {
	return u.game
}

// Run reads commands from in and writes responses to out until "quit" or
// end of input.
func (u *UCI) Run(in io.Reader, out io.Writer) error {
	u.out = out
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]
		u.log.Debug().Str("cmd", line).Msg("command")

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.game = u.newGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			// Searches finish before the next command is read.
		case "setoption":
			u.handleSetOption(args)
		case "quit":
			return nil
		// Debug commands
		case "d":
			u.handleDisplay()
		case "legal":
			u.handleLegal(args)
		case "status":
			u.println(u.game.Status.String())
		case "eval":
			u.printf("Evaluation: %s\n", engine.ScoreToString(u.engine.Evaluate(u.game.Board)))
		case "perft":
			u.handlePerft(args)
		default:
			u.printf("info string Unknown command: %s\n", cmd)
		}
	}

	return scanner.Err()
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessCore")
	u.println("id author ChessCore Team")
	u.println("")
	u.printf("option name Depth type spin default %d min 1 max %d\n", u.defaultDepth(), maxDepth)
	u.println("option name Difficulty type combo default medium var easy var medium var hard")
	u.println("uciok")
}

func (u *UCI) defaultDepth() int {
	if u.depth > 0 {
		return u.depth
	}
	return engine.DifficultySettings[u.engine.Difficulty()].Depth
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// Moves are applied until the first illegal one, which is reported.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	fenEnd, moves := len(args), []string(nil)
	for i, arg := range args {
		if arg == "moves" {
			fenEnd, moves = i, args[i+1:]
			break
		}
	}

	switch args[0] {
	case "startpos":
		u.game = u.newGame()
	case "fen":
		g, err := game.FromFEN(strings.Join(args[1:fenEnd], " "), u.gameOptions()...)
		if err != nil {
			u.printf("info string Invalid FEN: %v\n", err)
			return
		}
		u.game = g
	default:
		return
	}

	for _, moveStr := range moves {
		if err := u.game.CommitString(moveStr); err != nil {
			u.printf("info string Invalid move %s: %v\n", moveStr, err)
			return
		}
	}
}

// handleGo runs a search and prints the best move. Only "depth N" is
// honoured; time controls are accepted and ignored. Without a depth the
// Depth option applies, or the engine difficulty once Difficulty was set.
func (u *UCI) handleGo(args []string) {
	depth := 0
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "depth" {
			if d, err := strconv.Atoi(args[i+1]); err == nil && d > 0 {
				depth = min(d, maxDepth)
			}
		}
	}

	u.engine.OnInfo = u.sendInfo
	defer func() { u.engine.OnInfo = nil }()

	// Search a copy so the game board is never touched by the search.
	b := u.game.Board.Copy()
	var bestMove board.Move
	switch {
	case depth > 0:
		bestMove = u.engine.SearchWithLimits(b, u.game.Turn, engine.SearchLimits{Depth: depth})
	case u.depth > 0:
		bestMove = u.engine.SearchWithLimits(b, u.game.Turn, engine.SearchLimits{Depth: u.depth})
	default:
		bestMove = u.engine.Search(b, u.game.Turn)
	}

	if bestMove == board.NoMove {
		st, err := board.StatusOf(b, u.game.Turn)
		if err != nil {
			u.printf("info string %v\n", err)
		} else {
			u.printf("info string %s\n", st)
		}
		u.println("bestmove 0000")
		return
	}
	u.printf("bestmove %s\n", bestMove)
}

func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	// Scores are reported from the side to move's point of view.
	score := info.Score
	if u.game.Turn == board.Black {
		score = -score
	}
	switch {
	case score > engine.MateScore-engine.MaxPly:
		parts = append(parts, fmt.Sprintf("score mate %d", (engine.MateScore-score+1)/2))
	case score < -engine.MateScore+engine.MaxPly:
		parts = append(parts, fmt.Sprintf("score mate %d", -(engine.MateScore+score+1)/2))
	default:
		// The evaluator counts whole pawns.
		parts = append(parts, fmt.Sprintf("score cp %d", score*100))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	parts = append(parts, "pv "+info.Move.String())

	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleSetOption handles "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value []string
	var cur *[]string
	for _, arg := range args {
		switch arg {
		case "name":
			cur = &name
		case "value":
			cur = &value
		default:
			if cur != nil {
				*cur = append(*cur, arg)
			}
		}
	}

	v := strings.Join(value, " ")
	switch strings.ToLower(strings.Join(name, " ")) {
	case "depth":
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 || d > maxDepth {
			u.printf("info string Invalid depth: %s\n", v)
			return
		}
		u.depth = d
	case "difficulty":
		d, err := engine.ParseDifficulty(v)
		if err != nil {
			u.printf("info string %v\n", err)
			return
		}
		u.engine.SetDifficulty(d)
		// 0 hands the depth to the engine difficulty.
		u.depth = 0
	}
}

// handleDisplay prints the board, its FEN and the game status.
func (u *UCI) handleDisplay() {
	u.printf("%s\n", u.game.Board)
	u.printf("Fen: %s\n", u.game.FEN())
	u.printf("Status: %s\n", u.game.Status)
	if len(u.game.History) > 0 {
		u.printf("Moves: %s\n", strings.Join(u.game.Moves(), " "))
	}
}

// handleLegal lists the legal destinations of the piece on a square.
func (u *UCI) handleLegal(args []string) {
	if len(args) == 0 {
		u.println("info string usage: legal <square>")
		return
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		u.printf("info string %v\n", err)
		return
	}

	var dests []string
	for _, to := range board.LegalDestinations(u.game.Board, sq) {
		dests = append(dests, to.String())
	}
	u.printf("%s: %s\n", sq, strings.Join(dests, " "))
}

func (u *UCI) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}

	start := time.Now()
	nodes := u.engine.Perft(u.game.Board, u.game.Turn, depth)
	elapsed := time.Since(start)

	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		u.printf("NPS: %s\n", humanize.Comma(int64(nps)))
	}
}
