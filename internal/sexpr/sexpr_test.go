package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitemech/lydia-sub000/syntax"
	"github.com/whitemech/lydia-sub000/translate"
)

func Test_Parse_DiamondPropTrue(t *testing.T) {
	m := syntax.NewManager()
	f, err := Parse(m, "(diamond (prop a) true)")
	require.NoError(t, err)

	d, err := translate.ToDFA(m, f)
	require.NoError(t, err)

	assert.True(t, d.Accepts([]map[int]bool{{0: true}}))
	assert.False(t, d.Accepts([]map[int]bool{{0: false}}))
}

func Test_Parse_BoxAndOr(t *testing.T) {
	m := syntax.NewManager()
	f, err := Parse(m, "(and (diamond (prop a) true) (box (prop b) false))")
	require.NoError(t, err)
	require.NotNil(t, f)
}

func Test_Parse_Star(t *testing.T) {
	m := syntax.NewManager()
	f, err := Parse(m, "(diamond (star (prop a)) true)")
	require.NoError(t, err)
	require.NotNil(t, f)
}

func Test_Parse_TrailingGarbage(t *testing.T) {
	m := syntax.NewManager()
	_, err := Parse(m, "true true")
	require.Error(t, err)
}

func Test_Parse_UnknownForm(t *testing.T) {
	m := syntax.NewManager()
	_, err := Parse(m, "(frobnicate true)")
	require.Error(t, err)
}
