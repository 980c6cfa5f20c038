// gangen builds the generator graphs of the super-resolution / colorization GAN, describes them,
// exports them as StableHLO programs and runs them on images with the reference evaluator.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/uscgan/generator/internal/envconfig"
)

func main() {
	slog.SetDefault(newLogger(os.Stderr))
	slog.Debug("gangen config", "env", envconfig.Values())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

// newLogger logs as text to w, at the level set by GANGEN_DEBUG. Debug logs include the source line.
func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     envconfig.LogLevel(),
		AddSource: envconfig.Debug(),
	}))
}
