package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mailbox-engine/engine"
	"mailbox-engine/notation"
)

// defaultSuite is searched when no -fen is given.
var defaultSuite = []string{
	notation.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
}

type benchResult struct {
	fen string
	res engine.Result
}

func main() {
	depthFlag := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of times each position is searched")
	fenFlag := flag.String("fen", "", "FENs to search, separated by ';' (empty = built-in suite)")
	cacheFlag := flag.Int("cache", engine.DefaultCacheCapacity, "shared evaluation cache capacity")
	workersFlag := flag.Int("workers", runtime.NumCPU(), "positions searched in parallel")
	timeoutFlag := flag.Duration("timeout", 0, "abort searches after this long (0 = no limit)")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if *depthFlag <= 0 {
		fmt.Fprintf(os.Stderr, "depth must be positive, got %d\n", *depthFlag)
		os.Exit(2)
	}

	fens := defaultSuite
	if *fenFlag != "" {
		fens = strings.Split(*fenFlag, ";")
	}
	for _, fen := range fens {
		if _, err := notation.ParseFEN(fen); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeoutFlag > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutFlag)
		defer cancel()
	}

	// One Engine per goroutine; the evaluation cache is shared.
	cache := engine.NewCache(*cacheFlag)
	results := make([]benchResult, len(fens)*(*repeatFlag))

	startAll := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*workersFlag)
	for i := range results {
		i := i
		fen := fens[i%len(fens)]
		g.Go(func() error {
			opts := engine.DefaultOptions()
			opts.Depth = *depthFlag
			opts.Cache = cache
			opts.Logger = log.With().Int("job", i).Logger()
			p, err := notation.ParseFEN(fen)
			if err != nil {
				return err
			}
			res, err := engine.New(opts).Search(ctx, p)
			if err != nil {
				return fmt.Errorf("%s: %w", fen, err)
			}
			results[i] = benchResult{fen: fen, res: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}
	totalElapsed := time.Since(startAll)

	var nodes, evals uint64
	for i, r := range results {
		fmt.Printf("%3d  bestmove %-6s score %6d  nodes %9d  evals %8d  time=%v  completed=%v  %s\n",
			i+1, r.res.Move, r.res.Score, r.res.Nodes, r.res.Evaluations, r.res.Elapsed, r.res.Completed, r.fen)
		nodes += r.res.Nodes
		evals += r.res.Evaluations
	}
	st := cache.Stats()
	log.Info().
		Int("searches", len(results)).
		Uint64("nodes", nodes).
		Uint64("evals", evals).
		Uint64("cache_hits", st.Hits).
		Uint64("cache_evictions", st.Evictions).
		Dur("total", totalElapsed).
		Msg("searchbench finished")
}
