// meta/meta.go
package meta

import "time"

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 150

// WITH_CUTOFF defines the rollout depth after which MCTS evaluates.
const WITH_CUTOFF = 20

// MAX_TURNS caps the length of engine-driven games.
const MAX_TURNS = 300

const DEFAULT_PLAYERS = 2

const DEFAULT_ADDR = ":8080"

// RATE_LIMIT and RATE_BURST bound requests per client IP.
const RATE_LIMIT = 10
const RATE_BURST = 20

// POLL is how often a remote player checks for its turn.
const POLL = 500 * time.Millisecond
