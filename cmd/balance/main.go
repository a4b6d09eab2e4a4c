// Command balance plays seeded headless runs with a kiting pilot and reports how long each survives
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/game"
	"github.com/pitfigu/GuardianSurvivor/parameter"
)

var (
	configFlag  = flag.String("config", "", "TOML settings file")
	runsFlag    = flag.Int("runs", 8, "Number of runs")
	seedFlag    = flag.Uint64("seed", 1, "Seed of the first run, later runs count up")
	limitFlag   = flag.Duration("limit", 15*time.Minute, "Simulated time cap per run")
	workersFlag = flag.Int("workers", runtime.NumCPU(), "Concurrent runs")
	outFlag     = flag.String("out", "", "Write results as msgpack to this file")
	verboseFlag = flag.Bool("v", false, "Log session events to stderr")
)

// record is one run in the msgpack output
type record struct {
	Seed   uint64        `msgpack:"seed"`
	Result engine.Result `msgpack:"result"`
}

func main() {
	flag.Parse()

	if err := parameter.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "balance: %v\n", err)
		os.Exit(1)
	}
	launch := parameter.Launch{Config: *configFlag, Seed: *seedFlag}
	launch.ApplyEnv()

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	settings := parameter.Default()
	if launch.Config != "" {
		var err error
		if settings, err = parameter.Load(launch.Config); err != nil {
			fmt.Fprintf(os.Stderr, "balance: %v\n", err)
			os.Exit(1)
		}
	}

	records, err := runAll(settings, launch.Seed, *runsFlag, *workersFlag, *limitFlag, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "balance: %v\n", err)
		os.Exit(1)
	}
	report(os.Stdout, records, *limitFlag)

	if *outFlag != "" {
		if err := writeRecords(*outFlag, records); err != nil {
			fmt.Fprintf(os.Stderr, "balance: %v\n", err)
			os.Exit(1)
		}
	}
}

// runAll plays runs seeds from first on a fixed pool of workers; output order follows the seed
func runAll(settings *parameter.Settings, first uint64, runs, workers int, limit time.Duration, logger *slog.Logger) ([]record, error) {
	if runs <= 0 {
		return nil, nil
	}
	workers = max(1, min(workers, runs))

	records := make([]record, runs)
	errs := make([]error, runs)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		core.Go(func() {
			defer wg.Done()
			for i := range jobs {
				seed := first + uint64(i)
				r, err := simulate(settings, seed, limit, game.WithLogger(logger.With("seed", seed)))
				records[i] = record{Seed: seed, Result: r}
				errs[i] = err
			}
		})
	}
	for i := 0; i < runs; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "seed %d", records[i].Seed)
		}
	}
	return records, nil
}

func report(w io.Writer, records []record, limit time.Duration) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "seed\tsurvived\tscore\tkills\tlevel\tdifficulty\t")

	var survived time.Duration
	var score, capped int
	for _, rec := range records {
		r := rec.Result
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.1f\t\n", rec.Seed, r.Survival.Round(time.Second), r.Score, r.Kills, r.Level, r.Difficulty)
		survived += r.Survival
		score += r.Score
		if r.Survival >= limit {
			capped++
		}
	}
	tw.Flush()

	if n := len(records); n > 0 {
		fmt.Fprintf(w, "\nmean survival %s  mean score %d  reached limit %d/%d\n",
			(survived / time.Duration(n)).Round(time.Second), score/n, capped, n)
	}
}

func writeRecords(path string, records []record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer f.Close()
	if err := msgpack.NewEncoder(f).Encode(records); err != nil {
		return errors.Wrap(err, "encode results")
	}
	return f.Close()
}
