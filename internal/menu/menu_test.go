package menu

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Selection
		invalid bool
	}{
		{in: "1", want: SelectionQuandl},
		{in: "2", want: SelectionEikon},
		{in: " 1 ", want: SelectionQuandl},
		{in: "abc", invalid: true},
		{in: "", invalid: true},
		{in: "3", invalid: true},
		{in: "0", invalid: true},
		{in: "1.0", invalid: true},
	}
	for _, tt := range tests {
		got, err := ParseSelection(tt.in)
		if tt.invalid {
			var invalid *InvalidSelectionError
			require.Truef(t, errors.As(err, &invalid), "input %q", tt.in)
			require.Equal(t, tt.in, invalid.Input)
			continue
		}
		require.NoErrorf(t, err, "input %q", tt.in)
		require.Equal(t, tt.want, got)
	}
}

type counter struct{ quandl int }

func (c *counter) actions() Actions {
	return Actions{
		Quandl: func(context.Context) error { c.quandl++; return nil },
	}
}

func TestRun_QuandlOnce(t *testing.T) {
	t.Parallel()

	var c counter
	var out bytes.Buffer
	require.NoError(t, Run(t.Context(), strings.NewReader("1\n"), &out, c.actions()))
	require.Equal(t, 1, c.quandl)
	require.Equal(t, Prompt, out.String())
}

func TestRun_EikonIsNoOp(t *testing.T) {
	t.Parallel()

	var c counter
	var out bytes.Buffer
	require.NoError(t, Run(t.Context(), strings.NewReader("2\n"), &out, c.actions()))
	require.Zero(t, c.quandl)
	// nothing beyond the prompt
	require.Equal(t, Prompt, out.String())
}

func TestRun_InvalidInput(t *testing.T) {
	t.Parallel()

	var c counter
	var out bytes.Buffer
	require.NoError(t, Run(t.Context(), strings.NewReader("abc\n"), &out, c.actions()))
	require.Zero(t, c.quandl)
	require.Equal(t, Prompt+"Invalid option abc. Should be (1) or (2)\n", out.String())
}

func TestRun_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	var c counter
	require.NoError(t, Run(t.Context(), strings.NewReader("1"), &bytes.Buffer{}, c.actions()))
	require.Equal(t, 1, c.quandl)
}

func TestRun_ActionErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := Run(t.Context(), strings.NewReader("1\n"), &bytes.Buffer{}, Actions{
		Quandl: func(context.Context) error { return boom },
	})
	require.ErrorIs(t, err, boom)
}
