package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/qfmath/cmd/paramint/internal/job"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestParamint_SingleObject(t *testing.T) {
	out, err := run(t, `{"task_id":"x","kind":"discrete","samples":[2,4,6],"t1":0,"t2":3,"notional":100}`)
	require.NoError(t, err)

	var got job.Output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "x", got.TaskID)
	assert.Equal(t, 12.0, got.Integral)
	require.NotNil(t, got.Amount)
	assert.Equal(t, "1200", got.Amount.String())
}

func TestParamint_ArrayWithFailure(t *testing.T) {
	in := `[{"kind":"analytic","coeffs":[0,2],"t1":1,"t2":3},{"task_id":"bad","kind":"nope","t1":0,"t2":1}]`
	out, err := run(t, in)
	require.ErrorIs(t, err, errHadFailures)

	var got []job.Output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.InDelta(t, 8.0, got[0].Integral, 1e-12)
	assert.Equal(t, "bad", got[1].TaskID)
	assert.Contains(t, got[1].Error, "unknown kind")
}

func TestParamint_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "quad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("formula: midpoint\nintervals: 1\n"), 0o600))
	inPath := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(inPath, []byte(`{"kind":"numeric","coeffs":[0,0,1],"t1":0,"t2":2}`), 0o600))

	out, err := run(t, "", "--config", cfgPath, "--input", inPath)
	require.NoError(t, err)

	var got job.Output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	// one midpoint panel of t^2 over [0,2]
	assert.Equal(t, 2.0, got.Integral)
}

func TestParamint_BadInput(t *testing.T) {
	out, err := run(t, "not json")
	require.Error(t, err)
	assert.Contains(t, out, `"error"`)

	_, err = run(t, "{}", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParamint_NonFiniteItemKeepsBatch(t *testing.T) {
	in := `[{"task_id":"inf","kind":"discrete","samples":[1e308,1e308],"t1":0,"t2":2,"notional":1},` +
		`{"task_id":"ok","kind":"discrete","samples":[2,4,6],"t1":0,"t2":3},` +
		`{"task_id":"flat","kind":"analytic","coeffs":[1],"t1":1,"t2":1}]`
	out, err := run(t, in)
	require.ErrorIs(t, err, errHadFailures)

	var got []job.Output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "inf", got[0].TaskID)
	assert.Contains(t, got[0].Error, "non-finite")
	assert.Equal(t, 12.0, got[1].Integral)
	assert.Empty(t, got[1].Error)
	assert.Nil(t, got[2].Mean)
	assert.Contains(t, got[2].MeanError, "zero-width")
}
