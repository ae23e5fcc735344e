package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStash(t *testing.T) {
	t.Run("new stash is full", func(t *testing.T) {
		s := NewStash(3)
		require.Equal(t, 4, s.Max)
		for _, c := range Colours {
			for _, z := range Sizes {
				require.Equal(t, 4, s.Count(Piece{c, z}))
			}
		}
		require.Len(t, s.Pieces(), 12)
	})

	t.Run("remove until empty", func(t *testing.T) {
		s := NewStash(2)
		p := Piece{Green, Medium}
		for i := 0; i < 3; i++ {
			require.NoError(t, s.Remove(p))
		}
		require.False(t, s.Has(p))
		requireCode(t, CodeStashEmpty, s.Remove(p))
		require.NotContains(t, s.Pieces(), p)
	})

	t.Run("add past the maximum panics", func(t *testing.T) {
		s := NewStash(2)
		require.Panics(t, func() { s.Add(Piece{Red, Small}) })
	})

	t.Run("take smallest skips exhausted sizes", func(t *testing.T) {
		s := NewStash(2)
		for i := 0; i < 3; i++ {
			require.NoError(t, s.Remove(Piece{Yellow, Small}))
		}
		p, ok := s.TakeSmallest(Yellow)
		require.True(t, ok)
		require.Equal(t, Piece{Yellow, Medium}, p)
		require.Equal(t, 2, s.Count(p))
	})

	t.Run("take smallest of an exhausted colour", func(t *testing.T) {
		s := NewStash(2)
		for _, z := range Sizes {
			for i := 0; i < 3; i++ {
				require.NoError(t, s.Remove(Piece{Blue, z}))
			}
		}
		_, ok := s.TakeSmallest(Blue)
		require.False(t, ok)
	})

	t.Run("copies are independent", func(t *testing.T) {
		s := NewStash(2)
		c := s
		require.NoError(t, c.Remove(Piece{Red, Large}))
		require.Equal(t, 3, s.Count(Piece{Red, Large}))
		require.Equal(t, 2, c.Count(Piece{Red, Large}))
	})
}
