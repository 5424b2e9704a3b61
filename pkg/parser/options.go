package parser

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultMaxIncludeDepth bounds include recursion. The format itself has
// no cycle detection, so a self-including file would otherwise recurse
// forever.
const DefaultMaxIncludeDepth = 16

// Options 控制解析过程，零值可用。
type Options struct {
	Fs              afero.Fs     // File backend for reads; defaults to the OS filesystem
	BasePath        string       // Prefix prepended to every #include path
	MessageFunc     func(string) // Diagnostic sink; defaults to DefaultMessageFunc
	MaxIncludeDepth int          // Include recursion bound; defaults to DefaultMaxIncludeDepth
}

var defaultLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Str("component", "cfgparser").Logger()

// DefaultMessageFunc is the out-of-the-box diagnostic sink: every message
// becomes a zerolog warning on stderr.
func DefaultMessageFunc(msg string) {
	defaultLogger.Warn().Msg(msg)
}
