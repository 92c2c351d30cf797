package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, newCmd func(*RootOptions) *cobra.Command, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newCmd(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func decode(t *testing.T, out string) any {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestRangeCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"ascending", []string{"1", "4"}, "1\n2\n3\n4\n"},
		{"descending by default", []string{"3", "1"}, "3\n2\n1\n"},
		{"fractional step", []string{"0", "1", "0.25"}, "0\n0.25\n0.5\n0.75\n1\n"},
		{"even", []string{"1", "10", "--where-even"}, "2\n4\n6\n8\n10\n"},
		{"odd below zero", []string{"--where-odd", "--", "-3", "3"}, "-3\n-1\n1\n3\n"},
		{"skip and take", []string{"1", "10", "--where-even", "--skip", "1", "--take", "2"}, "4\n6\n"},
		{"take zero", []string{"1", "10", "--take", "0"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, NewRangeCommand, "text", tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestRangeCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"step away from end", []string{"--", "1", "5", "-1"}},
		{"zero step", []string{"1", "5", "0"}},
		{"negative take", []string{"1", "5", "--take", "-1"}},
		{"negative skip", []string{"1", "5", "--skip", "-1"}},
		{"not a number", []string{"one", "5"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, NewRangeCommand, "text", tc.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.True(t, IsReported(err))
			assert.Contains(t, out, "Error [INVALID_ARGUMENT]")
		})
	}
}

func TestRangeCommand_NegativeNeedsSeparator(t *testing.T) {
	_, err := run(t, NewRangeCommand, "text", "-3", "3")
	require.Error(t, err, "a leading negative number parses as a flag")
	assert.False(t, IsReported(err))
}

func TestRangeCommand_ExclusiveFilters(t *testing.T) {
	_, err := run(t, NewRangeCommand, "text", "1", "5", "--where-even", "--where-odd")
	require.Error(t, err)
	assert.False(t, IsReported(err))
}

func TestSortCommand(t *testing.T) {
	out, err := run(t, NewSortCommand, "text", "--", "10", "4", "-5", "4", "1", "2", "-98", "43")
	require.NoError(t, err)
	assert.Equal(t, "-98\n-5\n1\n2\n4\n4\n10\n43\n", out)

	out, err = run(t, NewSortCommand, "text", "--desc", "--distinct", "3", "1", "3", "2")
	require.NoError(t, err)
	assert.Equal(t, "3\n2\n1\n", out)
}

func TestSortCommand_JSON(t *testing.T) {
	out, err := run(t, NewSortCommand, "json", "2", "1.5")
	require.NoError(t, err)
	assert.Equal(t, []any{1.5, 2.0}, decode(t, out))
}

func TestChunkCommand(t *testing.T) {
	out, err := run(t, NewChunkCommand, "text", "--size", "2", "1", "2", "3", "4", "5")
	require.NoError(t, err)
	assert.Equal(t, "1 2\n3 4\n5\n", out)
}

func TestChunkCommand_DefaultSize(t *testing.T) {
	out, err := run(t, NewChunkCommand, "text", "1", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n", out, "the default chunk size holds all three")
}

func TestChunkCommand_InvalidSize(t *testing.T) {
	out, err := run(t, NewChunkCommand, "text", "--size", "0", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "size: must be at least 1")
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, NewStatsCommand, "text", "3", "1", "4", "1", "5")
	require.NoError(t, err)
	for _, want := range []string{
		"count:  5\n",
		"sum:    14\n",
		"min:    1\n",
		"max:    5\n",
		"mean:   2.8\n",
		"median: 3\n",
	} {
		assert.Contains(t, out, want)
	}
}

func TestStatsCommand_JSON(t *testing.T) {
	out, err := run(t, NewStatsCommand, "json", "1", "2", "3", "4")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"count": 4.0, "sum": 10.0, "min": 1.0, "max": 4.0, "mean": 2.5, "median": 2.5,
	}, decode(t, out))
}

func TestGroupCommand(t *testing.T) {
	out, err := run(t, NewGroupCommand, "text", "--mod", "3", "1", "2", "3", "4", "5", "6", "7")
	require.NoError(t, err)
	assert.Equal(t, "1: 1 4 7\n2: 2 5\n0: 3 6\n", out)

	out, err = run(t, NewGroupCommand, "text", "--", "-4", "4", "3")
	require.NoError(t, err)
	assert.Equal(t, "0: -4 4\n1: 3\n", out, "negative zero remainders join the zero group")
}

func TestGroupCommand_JSON(t *testing.T) {
	out, err := run(t, NewGroupCommand, "json", "--mod", "2", "1", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"0": []any{2.0},
		"1": []any{1.0, 3.0},
	}, decode(t, out))
}

func TestGroupCommand_ZeroModulus(t *testing.T) {
	out, err := run(t, NewGroupCommand, "text", "--mod", "0", "1")
	require.Error(t, err)
	assert.Contains(t, out, "mod: must not be zero")
}

func TestCompleteCommand(t *testing.T) {
	out, err := run(t, NewCompleteCommand, "text", "te", "tea", "ten", "to", "tenant", "inn", "tea")
	require.NoError(t, err)
	assert.Equal(t, "tea\nten\ntenant\n", out)

	out, err = run(t, NewCompleteCommand, "text", "--limit", "1", "te", "ten", "tea")
	require.NoError(t, err)
	assert.Equal(t, "tea\n", out)

	out, err = run(t, NewCompleteCommand, "json", "x", "tea")
	require.NoError(t, err)
	assert.Equal(t, []any{}, decode(t, out))
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, NewVersionCommand, "text")
	require.NoError(t, err)
	assert.Contains(t, out, "qk ")

	out, err = run(t, NewVersionCommand, "json")
	require.NoError(t, err)
	data, ok := decode(t, out).(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["version"])
}
