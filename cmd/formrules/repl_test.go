package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/formrules/pkg/formrules/postfix"
)

func TestSession(t *testing.T) {
	var out bytes.Buffer
	s := newSession(&out, nil)

	require.NoError(t, s.exec(":set a 4"))
	require.NoError(t, s.exec(":set b 3"))
	require.NoError(t, s.exec("{a} {b} -"))
	assert.Equal(t, "1\n", out.String())

	out.Reset()
	require.NoError(t, s.exec(":set name Ada Lovelace"))
	require.NoError(t, s.exec(":vars"))
	assert.Equal(t, "a = \"4\"\nb = \"3\"\nname = \"Ada Lovelace\"\n", out.String())

	out.Reset()
	require.NoError(t, s.exec(":trace"))
	require.NoError(t, s.exec("{a} {b} +"))
	assert.Contains(t, out.String(), "trace on")
	assert.Contains(t, out.String(), "push 4")
	assert.Contains(t, out.String(), "4 + 3 → 7")

	require.NoError(t, s.exec(":unset a"))
	assert.Error(t, s.exec("{a} {b} +"))

	assert.Error(t, s.exec("1 2"))
	assert.Error(t, s.exec(":set"))
	assert.Error(t, s.exec(":bogus"))
	assert.NoError(t, s.exec("   "))
	assert.ErrorIs(t, s.exec(":quit"), errQuit)
	assert.ErrorIs(t, s.exec("exit"), errQuit)
}

func TestSession_Options(t *testing.T) {
	var out bytes.Buffer
	s := newSession(&out, []postfix.Option{postfix.WithTokenDelimiter(",")})

	require.NoError(t, s.exec("1,2,+"))
	assert.Equal(t, "3\n", out.String())

	out.Reset()
	require.NoError(t, s.exec(":ops"))
	assert.Contains(t, out.String(), "+")
	assert.Contains(t, out.String(), "≠")
}

func TestSession_Complete(t *testing.T) {
	s := newSession(&bytes.Buffer{}, nil)
	s.vars["password"] = "x"
	s.vars["passcode"] = "y"
	s.vars["age"] = "1"

	assert.Equal(t, []string{"1 {passcode}", "1 {password}"}, s.complete("1 {pass"))
	assert.Nil(t, s.complete("1 {age} "))
	assert.Equal(t, []string{":set "}, s.complete(":se"))
}

func TestSession_CompleteCustomDelimiters(t *testing.T) {
	s := newSession(&bytes.Buffer{}, []postfix.Option{postfix.WithDelimiters("[", "]")})
	s.vars["password"] = "x"
	s.vars["age"] = "1"

	assert.Equal(t, []string{"1 [password]"}, s.complete("1 [pa"))
	assert.Equal(t, []string{"[age] [age]"}, s.complete("[age] [a"))
	assert.Nil(t, s.complete("1 [age] "))
	assert.Nil(t, s.complete("1 {pa"))

	multi := newSession(&bytes.Buffer{}, []postfix.Option{postfix.WithDelimiters("<<", ">>")})
	multi.vars["age"] = "1"
	assert.Equal(t, []string{"<<age>>"}, multi.complete("<<a"))
}
