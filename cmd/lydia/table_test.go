package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitemech/lydia-sub000/internal/sexpr"
	"github.com/whitemech/lydia-sub000/syntax"
	"github.com/whitemech/lydia-sub000/translate"
)

func Test_ParseCommaTrace(t *testing.T) {
	varNames := []string{"a", "b"}

	trace, err := parseCommaTrace("10,01", varNames)
	require.NoError(t, err)
	require.Len(t, trace, 2)
	assert.Equal(t, map[int]bool{0: true, 1: false}, trace[0])
	assert.Equal(t, map[int]bool{0: false, 1: true}, trace[1])

	trace, err = parseCommaTrace("", varNames)
	require.NoError(t, err)
	assert.Nil(t, trace)

	_, err = parseCommaTrace("1x", varNames)
	assert.Error(t, err)
}

func Test_CheckTraces_AndRenderTraceTable(t *testing.T) {
	m := syntax.NewManager()
	f, err := sexpr.Parse(m, "(diamond (prop a) true)")
	require.NoError(t, err)
	d, err := translate.ToDFA(m, f)
	require.NoError(t, err)

	rows := checkTraces(d, []string{"1", "0", "x"})
	require.Len(t, rows, 3)
	assert.True(t, rows[0].accept)
	assert.False(t, rows[1].accept)
	require.Error(t, rows[2].err)

	out := renderTraceTable(rows)
	assert.Contains(t, out, "trace")
	assert.Contains(t, out, "accept")
	assert.Contains(t, out, "reject")

	msg := renderREPLError(errors.New("boom"))
	assert.Contains(t, msg, "boom")
}
