// cmd/dogsim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	engine "github.com/jason-s-yu/dog/engine"
	"github.com/jason-s-yu/dog/engine/agent"
	"github.com/jason-s-yu/dog/service/internal/cache"
	"github.com/jason-s-yu/dog/service/internal/config"
	"github.com/jason-s-yu/dog/service/internal/game"
)

// CLI flags
var (
	games      int
	workers    int
	seed       uint64
	botSpec    string
	maxSteps   int
	maxRounds  int
	noExchange bool
	verbose    bool
)

func init() {
	flag.IntVar(&games, "games", 100, "Number of matches to simulate")
	flag.IntVar(&workers, "workers", 4, "Matches run concurrently")
	flag.Uint64Var(&seed, "seed", 0, "Base seed; match i uses seed+i (0 = DOG_SEED or the clock)")
	flag.StringVar(&botSpec, "bots", "greedy,random,greedy,random", "Comma separated bot per seat (greedy, random)")
	flag.IntVar(&maxSteps, "max-steps", 20000, "Abort a match after this many decisions (0 = no limit)")
	flag.IntVar(&maxRounds, "max-rounds", -1, "End a match undecided after this many rounds (-1 = DOG_MAX_ROUNDS)")
	flag.BoolVar(&noExchange, "no-exchange", false, "Skip the partner card exchange")
	flag.BoolVar(&verbose, "v", false, "Log every decision")
}

// botFactory builds the player for one seat of one match.
type botFactory func(seat uint8, seed uint64) engine.Player

// parseBots maps a list like "greedy,random,greedy,random" onto the four seats.
func parseBots(list string) ([engine.NumSeats]botFactory, error) {
	var out [engine.NumSeats]botFactory
	names := strings.Split(list, ",")
	if len(names) != engine.NumSeats {
		return out, fmt.Errorf("need %d bots, got %d", engine.NumSeats, len(names))
	}
	for i, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "greedy":
			out[i] = func(seat uint8, _ uint64) engine.Player { return agent.NewGreedyPlayer(seat) }
		case "random":
			out[i] = func(seat uint8, s uint64) engine.Player { return agent.NewRandomPlayer(s + uint64(seat)) }
		default:
			return out, fmt.Errorf("unknown bot %q", name)
		}
	}
	return out, nil
}

// tally aggregates match results across workers.
type tally struct {
	mu       sync.Mutex
	wins     [engine.NumTeams]int
	draws    int
	aborted  int
	steps    int
	rounds   int
	finished int
}

func (t *tally) add(res game.Result, steps int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.steps += steps
	t.rounds += int(res.Rounds)
	t.finished++
	switch {
	case res.Aborted:
		t.aborted++
	case res.WinningTeam < 0:
		t.draws++
	default:
		t.wins[res.WinningTeam]++
	}
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	factories, err := parseBots(botSpec)
	if err != nil {
		logger.WithError(err).Fatal("invalid -bots")
	}

	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	rules := engine.DefaultHouseRules()
	rules.CardExchange = !noExchange
	rules.MaxRounds, err = roundLimit(maxRounds, cfg.MaxRounds)
	if err != nil {
		logger.WithError(err).Fatal("invalid -max-rounds")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var recorder game.ActionRecorder
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Fatal("redis unavailable")
		}
		defer rdb.Close()
		rec := cache.NewRedisRecorder(rdb, cfg.QueueName)
		recorder = rec
		logger.WithFields(logrus.Fields{"addr": cfg.RedisAddr, "queue": rec.Queue()}).Info("recording actions")
	}

	logger.WithFields(logrus.Fields{
		"games":    games,
		"workers":  workers,
		"seed":     seed,
		"bots":     botSpec,
		"exchange": rules.CardExchange,
		"rounds":   rules.MaxRounds,
	}).Info("starting simulation")

	store := game.NewGameStore()
	results := &tally{}
	start := time.Now()

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i := 0; i < games; i++ {
		matchSeed := seed + uint64(i)
		eg.Go(func() error {
			return playMatch(ctx, logger, store, recorder, rules, factories, matchSeed, results)
		})
	}
	err = eg.Wait()

	elapsed := time.Since(start)
	fields := logrus.Fields{
		"played":      results.finished,
		"team0_wins":  results.wins[0],
		"team1_wins":  results.wins[1],
		"draws":       results.draws,
		"aborted":     results.aborted,
		"elapsed":     elapsed.Round(time.Millisecond).String(),
		"avg_rounds":  avg(results.rounds, results.finished),
		"avg_choices": avg(results.steps, results.finished),
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).WithFields(fields).Fatal("simulation failed")
	}
	logger.WithFields(fields).Info("simulation complete")
}

// playMatch runs one bot match to completion. A match stopped by the step
// limit counts as aborted; any other error stops the simulation.
func playMatch(ctx context.Context, logger *logrus.Logger, store *game.GameStore, recorder game.ActionRecorder,
	rules engine.HouseRules, factories [engine.NumSeats]botFactory, matchSeed uint64, results *tally) error {

	g := game.NewDogGame(matchSeed, rules, logger)
	g.Recorder = recorder
	for seat, f := range factories {
		if _, err := g.AddPlayer(fmt.Sprintf("bot-%d", seat), f(uint8(seat), matchSeed)); err != nil {
			return err
		}
	}
	store.AddGame(g)
	defer store.DeleteGame(g.ID)

	if err := g.Start(); err != nil {
		return err
	}
	steps, err := g.Run(ctx, maxSteps)
	g.Wait()
	if err != nil && !errors.Is(err, game.ErrStepLimit) {
		return fmt.Errorf("match seed %d: %w", matchSeed, err)
	}
	results.add(g.Result(), steps)
	return nil
}

// roundLimit resolves the -max-rounds flag; negative values defer to def.
func roundLimit(flagValue int, def uint16) (uint16, error) {
	if flagValue < 0 {
		return def, nil
	}
	if flagValue > math.MaxUint16 {
		return 0, fmt.Errorf("round limit %d exceeds %d", flagValue, math.MaxUint16)
	}
	return uint16(flagValue), nil
}

func avg(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
