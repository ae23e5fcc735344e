package game

import (
	"errors"
	"strings"
)

// Code is a stable identifier of a rule violation. Rendering a message for a
// code is left to the caller.
type Code string

const (
	CodeStashEmpty Code = "STASH_EMPTY"

	CodeSystemBadName Code = "SYSTEM_BAD_NAME"
	CodeSystemFull    Code = "SYSTEM_FULL"
	CodeSystemNoShip  Code = "SYSTEM_NO_SHIP"
	CodeSystemUnknown Code = "SYSTEM_UNKNOWN"

	CodeMoveOnGameOver      Code = "MOVE_ON_GAME_OVER"
	CodeUnrecognizedCommand Code = "UNRECOGNIZED_COMMAND"
	CodeActionsRemaining    Code = "ACTIONS_REMAINING"
	CodeSelfElimination     Code = "SELF_ELIMINATION"
	CodeEmptyMove           Code = "EMPTY_MOVE"

	CodeBadArity Code = "BAD_ARITY"
	CodeBadToken Code = "BAD_TOKEN"

	CodeNoConnection Code = "NO_CONNECTION"
	CodeNoTech       Code = "NO_TECH"
	CodeNoActions    Code = "NO_ACTIONS"

	CodeNoTemplate      Code = "NO_TEMPLATE"
	CodeTradeSameColour Code = "TRADE_SAME_COLOUR"

	CodeAttackTooSmall  Code = "ATTACK_TOO_SMALL"
	CodeAttackSelf      Code = "ATTACK_SELF"
	CodeAttackAmbiguous Code = "ATTACK_AMBIGUOUS"

	CodeHomeworldSizes     Code = "HOMEWORLD_SIZES"
	CodeHomeworldShip      Code = "HOMEWORLD_SHIP"
	CodeHomeworldColours   Code = "HOMEWORLD_COLOURS"
	CodeHomeworldBlueGreen Code = "HOMEWORLD_BLUE_GREEN"
	CodeHomeworldNemesis   Code = "HOMEWORLD_NEMESIS"
	CodeHomeworldExists    Code = "HOMEWORLD_EXISTS"
	CodeNoHomeworld        Code = "NO_HOMEWORLD"

	CodeCatastropheNotTriggerable Code = "CATASTROPHE_NOT_TRIGGERABLE"
	CodeCatastrophePending        Code = "CATASTROPHE_PENDING"

	CodePassFree    Code = "PASS_FREE"
	CodePassTooMany Code = "PASS_TOO_MANY"
)

// RuleError reports an illegal command. Context holds the offending values
// keyed by role ("system", "ship", ...), in insertion order.
type RuleError struct {
	Code    Code     `json:"code"`
	Context []string `json:"context,omitempty"` // alternating key, value
}

func newError(code Code, kv ...string) *RuleError {
	return &RuleError{Code: code, Context: kv}
}

func (e *RuleError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	for i := 0; i+1 < len(e.Context); i += 2 {
		b.WriteByte(' ')
		b.WriteString(e.Context[i])
		b.WriteByte('=')
		b.WriteString(e.Context[i+1])
	}
	return b.String()
}

// Is matches any RuleError with the same code.
func (e *RuleError) Is(target error) bool {
	t, ok := target.(*RuleError)
	return ok && t.Code == e.Code
}

// Get returns the context value stored under key.
func (e *RuleError) Get(key string) string {
	for i := 0; i+1 < len(e.Context); i += 2 {
		if e.Context[i] == key {
			return e.Context[i+1]
		}
	}
	return ""
}

// CodeOf extracts the rule code from err, or "" if err is not a rule error.
func CodeOf(err error) Code {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// Sentinels for errors.Is.
var (
	ErrStashEmpty          = &RuleError{Code: CodeStashEmpty}
	ErrSystemFull          = &RuleError{Code: CodeSystemFull}
	ErrSystemNoShip        = &RuleError{Code: CodeSystemNoShip}
	ErrMoveOnGameOver      = &RuleError{Code: CodeMoveOnGameOver}
	ErrUnrecognizedCommand = &RuleError{Code: CodeUnrecognizedCommand}
	ErrActionsRemaining    = &RuleError{Code: CodeActionsRemaining}
	ErrSelfElimination     = &RuleError{Code: CodeSelfElimination}
)
