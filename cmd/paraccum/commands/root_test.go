package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/paraccum/cmd/paraccum/commands"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	tc := commands.NewRootCmd("test_paraccum", "", "")
	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}

	tc.SetArgs(args)
	tc.SetOut(outBuf)
	tc.SetErr(errBuf)

	err = tc.Execute()

	return outBuf.String(), errBuf.String(), err
}

func TestSumCmd(t *testing.T) {
	stdout, stderr, err := execute(t, "sum")
	require.NoError(t, err)
	assert.Equal(t, "4950\n", stdout)
	assert.Empty(t, stderr)

	stdout, _, err = execute(t, "sum", "--n", "1000", "--workers", "8", "--threshold", "1")
	require.NoError(t, err)
	assert.Equal(t, "499500\n", stdout)
}

func TestSumCmdInvalid(t *testing.T) {
	_, _, err := execute(t, "sum", "--n", "-1")
	require.ErrorIs(t, err, commands.ErrInvalidArgument)

	_, _, err = execute(t, "sum", "--workers", "0", "--threshold", "0")
	require.ErrorIs(t, err, commands.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "--workers")
	assert.Contains(t, err.Error(), "--threshold")

	_, _, err = execute(t, "sum", "--log_format", "xml")
	require.ErrorIs(t, err, commands.ErrLogHandlerFailed)
}

func TestRandomCmd(t *testing.T) {
	stdout, _, err := execute(t, "random", "--n", "50", "--max", "10", "--seed", "7", "--print")
	require.NoError(t, err)

	parts := strings.Split(strings.TrimSpace(stdout), "\n\n")
	require.Len(t, parts, 2)

	fields := strings.Fields(parts[0])
	require.Len(t, fields, 50)

	var want int
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 10)
		want += v
	}
	assert.Equal(t, strconv.Itoa(want), parts[1])

	again, _, err := execute(t, "random", "--n", "50", "--max", "10", "--seed", "7", "--print")
	require.NoError(t, err)
	assert.Equal(t, stdout, again, "a fixed seed must reproduce the sequence")
}

func TestQueueCmd(t *testing.T) {
	stdout, _, err := execute(t, "queue", "--goroutines", "8", "--per", "125")
	require.NoError(t, err)
	assert.Equal(t, "popped=1000 sum=499500\n", stdout)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paraccum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 4\nthreshold: 2\nlog_level: debug\nlog_format: json\n"), 0o600))

	stdout, stderr, err := execute(t, "sum", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "4950\n", stdout)
	assert.Contains(t, stderr, `"msg":"ready to go"`)
	assert.Contains(t, stderr, `"workers":4`)

	require.NoError(t, os.WriteFile(path, []byte("workers: -4\n"), 0o600))

	_, _, err = execute(t, "sum", "--config", path)
	require.ErrorIs(t, err, commands.ErrInvalidArgument)
}

func TestVersionCmd(t *testing.T) {
	stdout, stderr, err := execute(t, "version")
	require.NoError(t, err)
	assert.Regexp(t, `\d+\.\d+\.\d+`, stdout)
	assert.Empty(t, stderr)
}
