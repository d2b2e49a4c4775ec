package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitemech/lydia-sub000/internal/bdd"

	"github.com/whitemech/lydia-sub000/dfa"
)

func twoStateEvenA(mgr *bdd.Manager) *dfa.DFA {
	d := dfa.New(mgr, []string{"a"})
	even := d.AddState(true)
	odd := d.AddState(false)
	d.SetInitial(even)
	a := mgr.Var(0)
	d.AddTransition(even, a, odd)
	d.AddTransition(even, mgr.Not(a), even)
	d.AddTransition(odd, a, even)
	d.AddTransition(odd, mgr.Not(a), odd)
	return d
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.sqlite")
	c, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func Test_Cache_MissThenHit(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "(a)")
	require.NoError(t, err)
	assert.False(t, ok)

	mgr := bdd.NewManager()
	original := twoStateEvenA(mgr)
	require.NoError(t, c.Put(ctx, "(a)", "(a)", original))

	reloaded, ok, err := c.Get(ctx, "(a)")
	require.NoError(t, err)
	require.True(t, ok)

	traces := [][]map[int]bool{
		nil,
		{{0: true}},
		{{0: true}, {0: true}},
	}
	for _, tr := range traces {
		assert.Equal(t, original.Accepts(tr), reloaded.Accepts(tr))
	}
}

func Test_Cache_PutOverwrites(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()
	mgr := bdd.NewManager()
	d := twoStateEvenA(mgr)

	require.NoError(t, c.Put(ctx, "(a)", "(a)", d))
	require.NoError(t, c.Put(ctx, "(a)", "(a)", d))

	_, ok, err := c.Get(ctx, "(a)")
	require.NoError(t, err)
	assert.True(t, ok)
}
