// ChessCore self-play: the engine plays both sides from a position and
// the finished game is stored.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/logging"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	fen        = flag.String("fen", board.StartFEN, "starting position")
	maxPlies   = flag.Int("plies", 40, "stop after this many plies")
	whiteDepth = flag.Int("white-depth", 0, "search depth for white (0 = saved preference)")
	blackDepth = flag.Int("black-depth", 0, "search depth for black (0 = saved preference)")
	dbDir      = flag.String("db", "", "database directory (default: $CHESSCORE_DB or platform data dir)")
	noDB       = flag.Bool("nodb", false, "do not persist the game")
	logLevel   = flag.String("log-level", os.Getenv("CHESSCORE_LOG_LEVEL"), "log level: debug, info, warn, error")
	quiet      = flag.Bool("quiet", false, "print only the final position")
)

func main() {
	flag.Parse()

	log, err := logging.New(os.Stderr, *logLevel, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(log, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}
}

func run(log zerolog.Logger, out io.Writer) error {
	var (
		store *storage.Storage
		err   error
	)
	if *noDB {
		store, err = storage.OpenInMemory(log)
	} else {
		store, err = storage.Open(*dbDir, log)
	}
	if err != nil {
		return err
	}
	defer store.Close()

	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Warn().Err(err).Msg("using default preferences")
	}

	cache, err := game.NewStatusCache(1 << 16)
	if err != nil {
		return err
	}
	defer cache.Close()

	g, err := game.FromFEN(*fen, game.WithStatusCache(cache))
	if err != nil {
		return err
	}

	players := [2]player{
		{engine.NewEngine(engine.WithLogger(log)), pick(*whiteDepth, prefs.Depth)},
		{engine.NewEngine(engine.WithLogger(log)), pick(*blackDepth, prefs.Depth)},
	}

	rec := &storage.GameRecord{StartFEN: g.StartFEN(), Started: time.Now()}
	reason := selfPlay(g, players, *maxPlies, out, *quiet)
	rec.Moves = g.Moves()
	rec.Result = g.Result()
	rec.Reason = reason
	rec.Finished = time.Now()

	fmt.Fprintf(out, "%s\nResult: %s (%s) after %d plies\n", g.Board, rec.Result, reason, len(rec.Moves))

	if err := store.SaveGame(rec); err != nil {
		return err
	}
	stats, err := store.RecordResult(rec.Result)
	if err != nil {
		return err
	}
	log.Info().
		Str("id", rec.ID).
		Str("games", humanize.Comma(int64(stats.GamesPlayed))).
		Str("started", humanize.Time(rec.Started)).
		Msg("game recorded")
	return nil
}

type player struct {
	eng   *engine.Engine
	depth int
}

func pick(flagDepth, saved int) int {
	if flagDepth > 0 {
		return flagDepth
	}
	if saved > 0 {
		return saved
	}
	return engine.DefaultDepth
}

// selfPlay plays g until it ends or maxPlies moves have been made and
// returns why it stopped.
func selfPlay(g *game.State, players [2]player, maxPlies int, out io.Writer, quiet bool) string {
	for ply := 0; ply < maxPlies; ply++ {
		if g.IsOver() {
			return g.Status.String()
		}

		p := players[g.Turn]
		m := p.eng.SearchWithLimits(g.Board, g.Turn, engine.SearchLimits{Depth: p.depth})
		if m == board.NoMove {
			// Unreachable while Status tracks the side to move.
			return "no move"
		}
		if err := g.Commit(m); err != nil {
			return err.Error()
		}

		if !quiet {
			fmt.Fprintf(out, "%d. %v %s (%s)%s", ply/2+1, g.Turn.Other(), m, g.Status, g.Board)
		}
	}

	if g.IsOver() {
		return g.Status.String()
	}
	return "ply limit"
}
