package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/logging"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	depth      = flag.Int("depth", 0, "default search depth (0 = saved preference)")
	dbDir      = flag.String("db", "", "database directory (default: $CHESSCORE_DB or platform data dir)")
	noDB       = flag.Bool("nodb", false, "keep preferences in memory only")
	logLevel   = flag.String("log-level", "", "log level: debug, info, warn, error")
	pretty     = flag.Bool("pretty", true, "human-readable logs on stderr")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chesscore-uci:", err)
		os.Exit(1)
	}
}

func run() error {
	// Bootstrap logger until the saved level is known.
	log, err := logging.New(os.Stderr, envOr(*logLevel, "CHESSCORE_LOG_LEVEL", ""), *pretty)
	if err != nil {
		return err
	}

	store, err := openStorage(log)
	if err != nil {
		return err
	}
	defer store.Close()

	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Warn().Err(err).Msg("using default preferences")
	}

	level := envOr(*logLevel, "CHESSCORE_LOG_LEVEL", prefs.LogLevel)
	if log, err = logging.New(os.Stderr, level, *pretty); err != nil {
		return err
	}

	searchDepth, err := resolveDepth(*depth, os.Getenv("CHESSCORE_DEPTH"), prefs.Depth)
	if err != nil {
		return err
	}

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	cache, err := game.NewStatusCache(1 << 16)
	if err != nil {
		return err
	}
	defer cache.Close()

	eng := engine.NewEngine(engine.WithLogger(log))
	protocol := uci.New(eng,
		uci.WithDepth(searchDepth),
		uci.WithStatusCache(cache),
		uci.WithLogger(log),
	)

	log.Info().Int("depth", searchDepth).Msg("uci ready")
	if err := protocol.Run(os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}

	prefs.Depth = searchDepth
	prefs.LogLevel = level
	if err := store.SavePreferences(prefs); err != nil {
		log.Warn().Err(err).Msg("preferences not saved")
	}
	return nil
}

func openStorage(log zerolog.Logger) (*storage.Storage, error) {
	if *noDB {
		return storage.OpenInMemory(log)
	}
	return storage.Open(*dbDir, log)
}

// envOr returns flagVal if set, else the environment variable, else def.
func envOr(flagVal, env, def string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// resolveDepth picks the flag, then the environment, then the saved
// preference.
func resolveDepth(flagDepth int, env string, saved int) (int, error) {
	if flagDepth > 0 {
		return flagDepth, nil
	}
	if env != "" {
		d, err := strconv.Atoi(env)
		if err != nil || d < 1 {
			return 0, fmt.Errorf("CHESSCORE_DEPTH: invalid depth %q", env)
		}
		return d, nil
	}
	if saved > 0 {
		return saved, nil
	}
	return engine.DefaultDepth, nil
}
