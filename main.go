package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"homeworlds/communication"
	"homeworlds/communication/client"
	"homeworlds/communication/server"
	"homeworlds/engine"
	"homeworlds/experiments"
	"homeworlds/game"
	"homeworlds/gamemaster"
	"homeworlds/meta"
	"homeworlds/player"
	"homeworlds/searcher"
	"homeworlds/searcher/agent"
	"homeworlds/store"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	mode       string
	players    int
	goroutines int
	episodes   int
	duration   time.Duration
	cutoff     int
	games      int
	maxTurns   int
	addr       string
	remote     string
	seat       string
	db         string
	resume     string
	experiment string
	out        string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.mode, "mode", "play", "play, autoplay, serve, bot or experiment")
	flag.IntVar(&cfg.players, "players", meta.DEFAULT_PLAYERS, "Number of players (2-4)")
	flag.IntVar(&cfg.goroutines, "goroutines", meta.GO_ROUTINES, "Number of goroutines for parallel search")
	flag.IntVar(&cfg.episodes, "episodes", meta.EPISODES, "Search episodes per move")
	flag.DurationVar(&cfg.duration, "duration", 0, "Search time per move, overrides -episodes")
	flag.IntVar(&cfg.cutoff, "cutoff", meta.WITH_CUTOFF, "Rollout depth before evaluation")
	flag.IntVar(&cfg.games, "games", 10, "Games per experiment matchup")
	flag.IntVar(&cfg.maxTurns, "max-turns", meta.MAX_TURNS, "Turn limit for engine games")
	flag.StringVar(&cfg.addr, "addr", meta.DEFAULT_ADDR, "Listen address for serve")
	flag.StringVar(&cfg.remote, "remote", "", "Server URL to play against instead of a local game")
	flag.StringVar(&cfg.seat, "seat", "S", "Seat taken by bot mode")
	flag.StringVar(&cfg.db, "db", "homeworlds.db", "Snapshot database for serve")
	flag.StringVar(&cfg.resume, "resume", "", "Game id to resume from the database")
	flag.StringVar(&cfg.experiment, "experiment", "baseline", "Experiment name: "+strings.Join(experiments.Names(), ", "))
	flag.StringVar(&cfg.out, "out", "experiments/results", "Output directory for experiment records")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.mode {
	case "play":
		err = runPlay(ctx, cfg)
	case "autoplay":
		err = runAutoplay(cfg)
	case "serve":
		err = runServe(ctx, cfg)
	case "bot":
		err = runBot(ctx, cfg)
	case "experiment":
		err = runExperiment(cfg)
	default:
		err = fmt.Errorf("unknown mode %q", cfg.mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", cfg.mode)
	}
}

// runPlay reads move strings from stdin for whichever seat is to move
func runPlay(ctx context.Context, cfg config) error {
	var comm communication.Communicator
	if cfg.remote != "" {
		comm = client.NewClient(cfg.remote, nil)
	} else {
		master, err := gamemaster.NewGameMaster(cfg.players)
		if err != nil {
			return err
		}
		comm = communication.NewLocal(master)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		moves, err := comm.Moves(ctx)
		if err != nil {
			return err
		}
		if moves.Seat == game.NoSeat {
			snap, err := comm.State(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("game over, won by %v\n", snap.Won)
			return nil
		}

		fmt.Printf("%s to move (%d legal moves)> ", moves.Seat, len(moves.Moves))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := comm.Play(ctx, moves.Seat, line)
		if err != nil {
			fmt.Printf("rejected: %v\n", err)
			continue
		}
		for _, result := range entry.Results {
			fmt.Printf("  %+v\n", result)
		}
	}
}

// runAutoplay plays MCTS agents against each other
func runAutoplay(cfg config) error {
	master, err := gamemaster.NewGameMaster(cfg.players)
	if err != nil {
		return err
	}
	agents := make([]agent.Agent, cfg.players)
	for i := range agents {
		agents[i] = agent.NewEvaluationAgent(createMCTS(cfg))
	}

	winner, gameMetric, _ := engine.NewLocalEngine(master, agents, cfg.maxTurns).Run()
	fmt.Printf("winner: %q after %d moves in %s\n", winner, gameMetric.TotalMoves, gameMetric.Duration)
	return nil
}

// runServe hosts one game over HTTP and saves it after every move
func runServe(ctx context.Context, cfg config) error {
	st, err := store.Open(cfg.db)
	if err != nil {
		return err
	}
	defer st.Close()

	var master *gamemaster.GameMaster
	if cfg.resume != "" {
		snap, err := st.Load(ctx, cfg.resume)
		if err != nil {
			return err
		}
		master, err = gamemaster.Restore(snap)
		if err != nil {
			return err
		}
	} else {
		master, err = gamemaster.NewGameMaster(cfg.players)
		if err != nil {
			return err
		}
		if err := st.Save(ctx, master.Snapshot()); err != nil {
			return err
		}
	}

	srv := server.NewServer(master, server.WithStore(st), server.WithRateLimit(meta.RATE_LIMIT, meta.RATE_BURST))
	return srv.ListenAndServe(ctx, cfg.addr)
}

// runBot joins a served game at one seat with an MCTS agent
func runBot(ctx context.Context, cfg config) error {
	if cfg.remote == "" {
		return fmt.Errorf("bot mode needs -remote")
	}
	seat := game.Seat(strings.ToUpper(cfg.seat))
	p := player.NewPlayer(seat, client.NewClient(cfg.remote, nil), agent.NewEvaluationAgent(createMCTS(cfg)), meta.POLL, 0)
	return p.Run(ctx)
}

func runExperiment(cfg config) error {
	run, ok := experiments.Lookup(cfg.experiment)
	if !ok {
		return fmt.Errorf("unknown experiment %q", cfg.experiment)
	}
	duration := cfg.duration
	if duration <= 0 {
		duration = 10 * time.Millisecond
	}
	return run(experiments.Config{Games: cfg.games, Duration: duration, MaxTurns: cfg.maxTurns, OutDir: cfg.out})
}

func createMCTS(cfg config) *searcher.MCTS {
	options := []searcher.Option{searcher.WithCutoff(cfg.cutoff), searcher.WithEvaluationFn(game.EvaluateHomeDefence)}
	if cfg.duration > 0 {
		options = append(options, searcher.WithDuration(cfg.duration))
	} else {
		options = append(options, searcher.WithEpisodes(cfg.episodes))
	}
	return searcher.NewMCTS(cfg.goroutines, options...)
}
