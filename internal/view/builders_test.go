package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	Kind string
	N    int
}

func kindKey(r rec) any { return r.Kind }
func nKey(r rec) any    { return r.N }

func TestGroupBy_PreservesOrderWithinGroups(t *testing.T) {
	seq := []rec{
		{Kind: "a", N: 1},
		{Kind: "b", N: 2},
		{Kind: "a", N: 3},
	}

	got := GroupBy(seq, kindKey)

	require.Len(t, got, 2)
	assert.Equal(t, []rec{{Kind: "a", N: 1}, {Kind: "a", N: 3}}, got["a"])
	assert.Equal(t, []rec{{Kind: "b", N: 2}}, got["b"])
}

func TestGroupBy_Empty(t *testing.T) {
	got := GroupBy(nil, kindKey)
	assert.Empty(t, got)
}

func TestIndexBy_LastWriteWins(t *testing.T) {
	seq := []rec{
		{Kind: "a", N: 1},
		{Kind: "b", N: 2},
		{Kind: "a", N: 3},
	}

	got := IndexBy(seq, kindKey)

	require.Len(t, got, 2)
	assert.Equal(t, rec{Kind: "a", N: 3}, got["a"], "latest record in sequence order wins")
	assert.Equal(t, rec{Kind: "b", N: 2}, got["b"])
}

func TestSortBy_Ascending(t *testing.T) {
	seq := []rec{{N: 3}, {N: 1}, {N: 2}}

	got := SortBy(seq, nKey)

	assert.Equal(t, []rec{{N: 1}, {N: 2}, {N: 3}}, got)
	assert.Equal(t, []rec{{N: 3}, {N: 1}, {N: 2}}, seq, "input must not be modified")
}

func TestSortBy_Stable(t *testing.T) {
	seq := []rec{
		{Kind: "x", N: 1},
		{Kind: "y", N: 1},
		{Kind: "z", N: 0},
	}

	got := SortBy(seq, nKey)

	assert.Equal(t, []rec{
		{Kind: "z", N: 0},
		{Kind: "x", N: 1},
		{Kind: "y", N: 1},
	}, got, "equal keys keep original relative order")
}

func TestSortBy_MixedKeyTypes(t *testing.T) {
	seq := []map[string]any{
		{"k": "s"},
		{"k": 2},
		{"k": nil},
		{"k": true},
		{"k": 1.5},
	}
	key := func(m map[string]any) any { return m["k"] }

	got := SortBy(seq, key)

	assert.Equal(t, []map[string]any{
		{"k": nil},
		{"k": true},
		{"k": 1.5},
		{"k": 2},
		{"k": "s"},
	}, got, "nil < bool < number < string")
}
