package experiments

import (
	"fmt"
	"homeworlds/engine"
	"homeworlds/experiments/metrics"
	"homeworlds/game"
	"homeworlds/gamemaster"
	"homeworlds/searcher"
	"homeworlds/searcher/agent"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// Config scales an experiment run
type Config struct {
	Games    int           // Per matchup
	Duration time.Duration // Search budget per move
	MaxTurns int
	OutDir   string // Root of the csv output
}

// Experiment runs one named study
type Experiment func(cfg Config) error

var experiments = map[string]Experiment{
	"parallelization": RunParallelizationExperiment,
	"throughput":      RunThroughputExperiment,
	"cutoff":          RunCutoffExperiment,
	"evaluation":      RunEvaluationExperiment,
	"baseline":        RunBaselineExperiment,
}

// Lookup returns the experiment registered under name
func Lookup(name string) (Experiment, bool) {
	e, ok := experiments[name]
	return e, ok
}

// Names lists the registered experiments
func Names() []string {
	names := make([]string, 0, len(experiments))
	for name := range experiments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parallelConfigs(budget time.Duration) []metrics.AgentConfig {
	configs := []metrics.AgentConfig{}
	for i, goroutines := range []int{1, 4, 8, 16, 32, 64} {
		configs = append(configs, metrics.AgentConfig{ID: i + 1, Goroutines: goroutines, Duration: budget, Evaluation: "material"})
	}
	return configs
}

// RunParallelizationExperiment pairs agents with more goroutines against
// the sequential baseline
func RunParallelizationExperiment(cfg Config) error {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Duration: cfg.Duration, Evaluation: "material"}
	configs := parallelConfigs(cfg.Duration)
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment("parallelization", cfg, append(configs, baseline), matchUps)
}

// RunThroughputExperiment plays each config against itself, for the same
// playing strength and similar game length, to measure episodes per move
func RunThroughputExperiment(cfg Config) error {
	configs := parallelConfigs(cfg.Duration)
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	return runExperiment("throughput", cfg, configs, matchUps)
}

func RunCutoffExperiment(cfg Config) error {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 8, Duration: cfg.Duration, Cutoff: 200, Evaluation: "material"} // Random games rarely end sooner
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 1, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 5, Evaluation: "material"},
		{ID: 2, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 20, Evaluation: "material"},
		{ID: 3, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 50, Evaluation: "material"},
		{ID: 4, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 100, Evaluation: "material"},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range cutoffConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment("cutoff", cfg, append(cutoffConfigs, baseline), matchUps)
}

// RunEvaluationExperiment compares the cutoff heuristics head to head
func RunEvaluationExperiment(cfg Config) error {
	material := metrics.AgentConfig{ID: 1, Goroutines: 8, Duration: cfg.Duration, Cutoff: 20, Evaluate: game.EvaluateMaterial, Evaluation: "material"}
	defence := metrics.AgentConfig{ID: 2, Goroutines: 8, Duration: cfg.Duration, Cutoff: 20, Evaluate: game.EvaluateHomeDefence, Evaluation: "home_defence"}

	return runExperiment("evaluation", cfg, []metrics.AgentConfig{material, defence}, [][]metrics.AgentConfig{{material, defence}})
}

// RunBaselineExperiment checks the search against random play
func RunBaselineExperiment(cfg Config) error {
	random := metrics.AgentConfig{ID: 0, Random: true}
	search := metrics.AgentConfig{ID: 1, Goroutines: 8, Duration: cfg.Duration, Cutoff: 20, Evaluation: "material"}

	return runExperiment("baseline", cfg, []metrics.AgentConfig{random, search}, [][]metrics.AgentConfig{{random, search}})
}

func runExperiment(name string, cfg Config, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) error {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < cfg.Games; i++ {
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(matchUps), i+1, cfg.Games)

			// Alternate the starting agent
			first, second := config1, config2
			if i%2 == 1 {
				first, second = config2, config1
			}
			winner, gameMetric, moveMetrics, err := runGame(first, second, cfg.MaxTurns)
			if err != nil {
				return err
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				Index:      count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	return writeRecords(name, cfg.OutDir, configs, gameRecords, moveRecords)
}

func writeRecords(name, root string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msgf("stored %s records in %s", name, writer.Dir())
	return nil
}

// runGame plays a two player game, config1 on the starting seat
func runGame(config1, config2 metrics.AgentConfig, maxTurns int) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	master, err := gamemaster.NewGameMaster(2)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	agents := []agent.Agent{createAgent(config1), createAgent(config2)}
	winner, gameMetric, moveMetrics := engine.NewLocalEngine(master, agents, maxTurns).Run()
	return winner, gameMetric, moveMetrics, nil
}

func createAgent(config metrics.AgentConfig) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent()
	}
	return agent.NewEvaluationAgent(createMCTS(config))
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Evaluate != nil {
		options = append(options, searcher.WithEvaluationFn(config.Evaluate))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}
