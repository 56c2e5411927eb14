package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"mailbox-engine/engine"
)

func main() {
	depth := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	cacheSize := flag.Int("cache", engine.DefaultCacheCapacity, "evaluation cache capacity")
	fen := flag.String("fen", "", "start from this FEN (empty = initial position)")
	noAuto := flag.Bool("noauto", false, "do not let the engine reply automatically")
	verbose := flag.Bool("v", false, "debug logging on stderr")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	opts := engine.DefaultOptions()
	opts.Depth = *depth
	opts.CacheCapacity = *cacheSize
	opts.Logger = logger

	c := newConsole(os.Stdin, os.Stdout, engine.New(opts), logger)
	c.autoReply = !*noAuto
	if err := c.reset(*fen); err != nil {
		fmt.Fprintf(os.Stderr, "bad -fen: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := c.run(ctx); err != nil {
		logger.Error().Err(err).Msg("console stopped")
		os.Exit(1)
	}
}
