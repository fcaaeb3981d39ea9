package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/qfmath/dist"
)

func run(t *testing.T, args ...string) ([]result, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	var out []result
	sc := bufio.NewScanner(&stdout)
	for sc.Scan() {
		var r result
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		out = append(out, r)
	}
	return out, err
}

func TestNormdist_Cdf(t *testing.T) {
	out, err := run(t, "cdf", "0", "1.96")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "cdf", out[0].Func)
	require.NotNil(t, out[0].Output)
	assert.InDelta(t, 0.5, *out[0].Output, 1e-9)
	require.NotNil(t, out[1].Output)
	assert.InDelta(t, 0.975, *out[1].Output, 1e-5)
}

func TestNormdist_NegativeArguments(t *testing.T) {
	n := dist.StandardNormal()

	out, err := run(t, "cdf", "-1.5", "2")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, -1.5, out[0].Input)
	require.NotNil(t, out[0].Output)
	assert.Equal(t, n.Cumulative(-1.5), *out[0].Output)

	out, err = run(t, "pdf", "-3")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Output)
	assert.Equal(t, n.Density(-3), *out[0].Output)

	out, err = run(t, "--log-level", "debug", "cdf", "-0.25", "--log-level=error")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, -0.25, out[0].Input)
}

func TestNormdist_Pdf(t *testing.T) {
	out, err := run(t, "pdf", "1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Output)
	assert.Equal(t, dist.StandardNormal().Density(1), *out[0].Output)
}

func TestNormdist_Inv(t *testing.T) {
	out, err := run(t, "inv", "0.5", "0.975")
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].Output)
	assert.InDelta(t, 0.0, *out[0].Output, 1e-12)
	require.NotNil(t, out[1].Output)
	assert.InDelta(t, 1.959964, *out[1].Output, 1e-5)

	_, err = run(t, "inv", "1.5")
	require.ErrorIs(t, err, dist.ErrProbabilityOutOfRange)

	out, err = run(t, "inv", "--unchecked", "0.3")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Output)
}

func TestNormdist_InvUncheckedNonFinite(t *testing.T) {
	out, err := run(t, "inv", "--unchecked", "0", "1", "1.5", "-0.2")
	require.NoError(t, err)
	require.Len(t, out, 4)

	wantNotes := []string{"-Inf", "+Inf", "NaN", "NaN"}
	for i, r := range out {
		assert.Equal(t, "inv", r.Func)
		assert.Nil(t, r.Output, "input %v", r.Input)
		assert.Equal(t, wantNotes[i], r.Note, "input %v", r.Input)
	}
	assert.Equal(t, -0.2, out[3].Input)
}

func TestNormdist_BadArgs(t *testing.T) {
	_, err := run(t, "cdf", "abc")
	require.Error(t, err)

	_, err = run(t, "cdf")
	require.Error(t, err)

	_, err = run(t, "cdf", "1", "--log-level")
	require.Error(t, err)

	_, err = run(t, "pdf", "--unchecked", "1")
	require.Error(t, err)
}

func TestNormdist_Help(t *testing.T) {
	out, err := run(t, "cdf", "--help")
	require.NoError(t, err)
	assert.Empty(t, out)
}
