package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	t.Run("separators and prefixes", func(t *testing.T) {
		cmds, err := parseMove("Sac Y3 north; m g1 north alpha / mo g1 alpha north\\pass\n  ,, b G alpha")
		require.NoError(t, err)
		require.Equal(t, []command{
			{verb: VerbSacrifice, args: []string{"y3", "north"}},
			{verb: VerbMove, args: []string{"g1", "north", "alpha"}},
			{verb: VerbMove, args: []string{"g1", "alpha", "north"}},
			{verb: VerbPass, args: []string{}},
			{verb: VerbBuild, args: []string{"g", "alpha"}},
		}, cmds)
	})

	t.Run("unknown keyword", func(t *testing.T) {
		_, err := parseMove("jump g1 north alpha")
		requireCode(t, CodeUnrecognizedCommand, err)
		require.Equal(t, "jump", err.(*RuleError).Get("command"))
	})

	t.Run("empty move", func(t *testing.T) {
		for _, move := range []string{"", "   ", " , ; \n"} {
			_, err := parseMove(move)
			requireCode(t, CodeEmptyMove, err)
		}
	})
}

func TestLookupVerb(t *testing.T) {
	for word, want := range map[string]Verb{
		"h": VerbHomeworld, "disc": VerbDiscover, "move": VerbMove, "bu": VerbBuild,
		"t": VerbTrade, "att": VerbAttack, "s": VerbSacrifice, "cat": VerbCatastrophe, "p": VerbPass,
	} {
		got, ok := lookupVerb(word)
		require.True(t, ok, word)
		require.Equal(t, want, got, word)
	}
	_, ok := lookupVerb("moves")
	require.False(t, ok)
}

func TestParseToken(t *testing.T) {
	tok, err := parseToken("G3n")
	require.NoError(t, err)
	require.Equal(t, token{colour: Green, size: Large, seat: North}, tok)

	tok, err = parseToken("y")
	require.NoError(t, err)
	require.Equal(t, token{colour: Yellow}, tok)

	for _, bad := range []string{"g4", "x1", "g1x", "", "g12"} {
		_, err := parseToken(bad)
		requireCode(t, CodeBadToken, err)
	}
	_, err = parsePiece("g")
	requireCode(t, CodeBadToken, err)

	c, err := parseColour("Yellow")
	require.NoError(t, err)
	require.Equal(t, Yellow, c)
}

func TestRuleError(t *testing.T) {
	err := newError(CodeNoTech, "colour", "Y", "system", "alpha")
	require.Equal(t, "NO_TECH colour=Y system=alpha", err.Error())
	require.Equal(t, "alpha", err.Get("system"))
	require.Empty(t, err.Get("ship"))
	require.ErrorIs(t, newError(CodeStashEmpty, "piece", "G1"), ErrStashEmpty)
	require.NotErrorIs(t, err, ErrStashEmpty)
	require.Equal(t, Code(""), CodeOf(nil))
}
