package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for losing outcome, also applied as virtual loss during selection

// MaxCutoff lets rollouts run until the game is over
const MaxCutoff = math.MaxInt32
