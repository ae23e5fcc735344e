package game

import (
	"strings"
)

// Verb is a command keyword.
type Verb string

const (
	VerbHomeworld   Verb = "homeworld"
	VerbDiscover    Verb = "discover"
	VerbMove        Verb = "move"
	VerbBuild       Verb = "build"
	VerbTrade       Verb = "trade"
	VerbAttack      Verb = "attack"
	VerbSacrifice   Verb = "sacrifice"
	VerbCatastrophe Verb = "catastrophe"
	VerbPass        Verb = "pass"
)

var verbs = []Verb{
	VerbHomeworld, VerbDiscover, VerbMove, VerbBuild, VerbTrade,
	VerbAttack, VerbSacrifice, VerbCatastrophe, VerbPass,
}

// command is one parsed sub-command of a move string.
type command struct {
	verb Verb
	args []string
}

func (c command) String() string {
	return strings.Join(append([]string{string(c.verb)}, c.args...), " ")
}

func isSeparator(r rune) bool {
	switch r {
	case ',', ';', '/', '\\', '\n', '\r':
		return true
	}
	return false
}

// lookupVerb resolves a keyword by unambiguous prefix.
func lookupVerb(word string) (Verb, bool) {
	var found Verb
	matches := 0
	for _, v := range verbs {
		if strings.HasPrefix(string(v), word) {
			if string(v) == word {
				return v, true
			}
			found = v
			matches++
		}
	}
	return found, matches == 1
}

// parseMove splits a move string into sub-commands. Case and surrounding
// whitespace are ignored; empty sub-commands are skipped.
func parseMove(move string) ([]command, error) {
	var cmds []command
	for _, part := range strings.FieldsFunc(strings.ToLower(move), isSeparator) {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		verb, ok := lookupVerb(fields[0])
		if !ok {
			return nil, newError(CodeUnrecognizedCommand, "command", fields[0])
		}
		cmds = append(cmds, command{verb: verb, args: fields[1:]})
	}
	if len(cmds) == 0 {
		return nil, newError(CodeEmptyMove)
	}
	return cmds, nil
}

func joinCommands(cmds []string) string {
	return strings.Join(cmds, ", ")
}
