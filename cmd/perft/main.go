package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"sync"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mailbox-engine/board"
	"mailbox-engine/notation"
)

func main() {
	fen := flag.String("fen", notation.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	workers := flag.Int("workers", runtime.NumCPU(), "Root moves searched in parallel")
	verify := flag.Bool("verify", false, "Compare the node count with dragontoothmg")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := notation.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	ctx := context.Background()

	if *divide {
		div, err := parallelDivide(ctx, pos, *depth, *workers)
		if err != nil {
			log.Fatal().Err(err).Msg("divide failed")
		}
		keys := make([]string, 0, len(div))
		var sum uint64
		for m, n := range div {
			keys = append(keys, m)
			sum += n
		}
		sort.Strings(keys)
		for _, m := range keys {
			fmt.Printf("%s: %d\n", m, div[m])
		}
		fmt.Printf("Total: %d\n", sum)
		if *verify {
			verifyCount(log, *fen, *depth, sum)
		}
		return
	}

	var totalNodes, nodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		div, err := parallelDivide(ctx, pos, *depth, *workers)
		if err != nil {
			log.Fatal().Err(err).Msg("perft failed")
		}
		nodes = 0
		for _, n := range div {
			nodes += n
		}
		totalNodes += nodes
		log.Debug().Int("run", i+1).Uint64("nodes", nodes).Msg("perft run")
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *verify {
		verifyCount(log, *fen, *depth, nodes)
	}
}

// parallelDivide runs one perft per root move, at most workers at a time.
func parallelDivide(ctx context.Context, pos board.Position, depth, workers int) (map[string]uint64, error) {
	if depth == 1 || workers <= 1 {
		return board.PerftDivide(pos, depth), nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	div := make(map[string]uint64)
	for _, m := range pos.LegalMoves() {
		m := m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n := board.Perft(board.Apply(pos, m), depth-1)
			mu.Lock()
			div[m.String()] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return div, nil
}

func verifyCount(log zerolog.Logger, fen string, depth int, got uint64) {
	b := dragontoothmg.ParseFen(fen)
	want := dragontoothPerft(&b, depth)
	if got != want {
		log.Error().Uint64("got", got).Uint64("dragontoothmg", want).Msg("perft mismatch")
		os.Exit(1)
	}
	log.Info().Uint64("nodes", got).Msg("perft verified against dragontoothmg")
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}
