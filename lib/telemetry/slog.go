package telemetry

import (
	"io"
	"log/slog"
	"os"
)

// InitSlog installs a text handler on stderr as the default slog logger,
// stdout is left alone for program output.
func InitSlog(verbose bool) {
	InitSlogWriter(os.Stderr, verbose)
}

func InitSlogWriter(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}
