package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/querykit/errors"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))
	assert.Equal(t, ExitFailure, GetExitCode(stderrors.New("plain")))

	wrapped := WrapExitError(ExitCommandError, "qk.sort", errors.InvalidArgument("number", "nope"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.True(t, errors.Is(wrapped, errors.ErrCodeInvalidArgument))
	assert.Contains(t, wrapped.Error(), "qk.sort: ")
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, ExitCommandError, exitCodeFor(errors.EmptySequence("max")))
	assert.Equal(t, ExitCommandError, exitCodeFor(errors.InvalidArgument("size", "too small")))
	assert.Equal(t, ExitFailure, exitCodeFor(errors.ReadOnly("append")))
	assert.Equal(t, ExitFailure, exitCodeFor(stderrors.New("boom")))
}

func TestFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}
	require.NoError(t, f.Error("NOT_FOUND", "key missing", map[string]any{"key": "x"}))
	assert.Contains(t, buf.String(), "Error [NOT_FOUND]: key missing")
	assert.Contains(t, buf.String(), "Details: map[key:x]")
}

func TestFormatter_VerboseLogGoesToErrWriter(t *testing.T) {
	out, diag := &bytes.Buffer{}, &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag, Verbose: true}
	f.VerboseLog("took %d", 3)
	assert.Empty(t, out.String())
	assert.Equal(t, "took 3\n", diag.String())

	f.Verbose = false
	f.VerboseLog("hidden")
	assert.Equal(t, "took 3\n", diag.String())
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		3:       "3",
		-98:     "-98",
		0.25:    "0.25",
		1000000: "1000000",
		2.5e-3:  "0.0025",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatNumber(in))
	}
}

func TestParseNumbers(t *testing.T) {
	got, err := parseNumbers([]string{"1", "-2.5", "1e3"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2.5, 1000}, got)

	for _, bad := range []string{"NaN", "Inf", "-inf", "1,5", ""} {
		_, err := parseNumbers([]string{bad})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument), "input %q", bad)
	}
}
