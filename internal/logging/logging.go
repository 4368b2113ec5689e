// Package logging builds the zerolog loggers shared by the binaries and
// adapts them to the interfaces of third-party libraries.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// New returns a logger writing to w at the named level. pretty selects
// the human-readable console format instead of JSON lines.
func New(w io.Writer, level string, pretty bool) (zerolog.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Badger adapts a zerolog logger to badger's Logger interface.
type Badger struct {
	Log zerolog.Logger
}

func (b Badger) Errorf(format string, args ...interface{}) {
	b.Log.Error().Msg(trim(format, args))
}

func (b Badger) Warningf(format string, args ...interface{}) {
	b.Log.Warn().Msg(trim(format, args))
}

func (b Badger) Infof(format string, args ...interface{}) {
	b.Log.Info().Msg(trim(format, args))
}

func (b Badger) Debugf(format string, args ...interface{}) {
	b.Log.Debug().Msg(trim(format, args))
}

// badger terminates its messages with a newline.
func trim(format string, args []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
