package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/twitter/procsched/common/errors"
)

const (
	input  = "cr 1\ncr 2\nrq 3 3\nrq 3 1\nde 2\n\nin\ncr 3\nto\n"
	output = "1 2 2 1 1\r\n0 -1 0 "
)

type result struct {
	err    error
	out    string
	errOut string
}

func execCLI(t *testing.T, stdin string, args ...string) result {
	var out, errOut bytes.Buffer
	cl, err := NewCLIClient(strings.NewReader(stdin), &out, &errOut)
	require.NoError(t, err)
	c := cl.(*ProcschedCLIClient)
	c.RootCmd.SetArgs(append(args, "--log_level", "error"))
	err = c.Exec()
	log.SetLevel(log.ErrorLevel)
	return result{err: err, out: out.String(), errOut: errOut.String()}
}

func writeInput(t *testing.T, text string) (string, string) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(in, []byte(text), 0644))
	return in, filepath.Join(dir, "output.txt")
}

func TestRun(t *testing.T) {
	in, out := writeInput(t, input)
	r := execCLI(t, "", "run", "--input", in, "--output", out)
	require.NoError(t, r.err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, output, string(got))
}

func TestRunStreams(t *testing.T) {
	r := execCLI(t, input, "run", "--input", "-", "--output", "-", "--format", "unix")
	require.NoError(t, r.err)
	assert.Equal(t, "1 2 2 1 1\n0 -1 0\n", r.out)

	r = execCLI(t, input, "--config", "unix", "run", "--input", "-", "--output", "-")
	require.NoError(t, r.err)
	assert.Equal(t, "1 2 2 1 1\n0 -1 0\n", r.out)
}

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()
	r := execCLI(t, "", "run", "--input", filepath.Join(dir, "missing.txt"), "--output", filepath.Join(dir, "out.txt"))
	require.Error(t, r.err)
	assert.Equal(t, commonerrors.InputNotFoundExitCode, commonerrors.GetExitCode(r.err))
	assert.Contains(t, r.err.Error(), "input file not found")

	in, _ := writeInput(t, "rq 1\n")
	r = execCLI(t, "", "run", "--input", in, "--output", filepath.Join(dir, "out.txt"))
	assert.Equal(t, commonerrors.InputParseFailureExitCode, commonerrors.GetExitCode(r.err))

	in, _ = writeInput(t, input)
	r = execCLI(t, "", "run", "--input", in, "--output", filepath.Join(dir, "no", "dir", "out.txt"))
	assert.Equal(t, commonerrors.OutputWriteFailureExitCode, commonerrors.GetExitCode(r.err))

	r = execCLI(t, "", "run", "--input", in, "--format", "dos")
	assert.Equal(t, commonerrors.ConfigFailureExitCode, commonerrors.GetExitCode(r.err))
}

func TestBadConfig(t *testing.T) {
	r := execCLI(t, input, "--config", "engine: {maxProcesses: 0}", "run", "--input", "-", "--output", "-")
	require.Error(t, r.err)
	assert.Equal(t, commonerrors.ConfigFailureExitCode, commonerrors.GetExitCode(r.err))
	assert.Empty(t, r.out)
}

func TestSmallerTable(t *testing.T) {
	r := execCLI(t, "cr 0\ncr 0\ncr 0\n", "--config", "engine: {maxProcesses: 3}", "run", "--input", "-", "--output", "-")
	require.NoError(t, r.err)
	assert.Equal(t, "0 0 -1 ", r.out)
}

func TestShell(t *testing.T) {
	r := execCLI(t, "cr 2\nrq 0 1\n\ncr 1\n", "shell", "--prompt", "")
	require.NoError(t, r.err)
	assert.Equal(t, "1\n1\n1\n", r.out)
}

func TestCheck(t *testing.T) {
	in, _ := writeInput(t, input)
	r := execCLI(t, "", "--config", "debug", "check", "--input", in)
	require.NoError(t, r.err)
	assert.Equal(t, "ok\n", r.out)

	r = execCLI(t, "", "check", "--input", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, commonerrors.InputNotFoundExitCode, commonerrors.GetExitCode(r.err))
}

func TestShowConfig(t *testing.T) {
	r := execCLI(t, "", "--config", "unix", "show_config", "--json")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, `"format":"unix"`)
	assert.Contains(t, r.out, `"inventories":[1,1,2,3]`)

	r = execCLI(t, "", "show_config")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "maxProcesses: 16")
}

func TestStats(t *testing.T) {
	r := execCLI(t, input, "--stats", "run", "--input", "-", "--output", "-")
	require.NoError(t, r.err)
	assert.Contains(t, r.errOut, `"procsched/driver/batchCounter": 2`)
	assert.Contains(t, r.errOut, `"procsched/engine/createdCounter": 2`)
}
