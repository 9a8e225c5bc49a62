package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompt is printed before reading the selection.
const Prompt = "Select qandl print with (1) or Eikon (2):"

// Selection is a parsed menu choice.
type Selection int

const (
	SelectionQuandl Selection = 1
	SelectionEikon  Selection = 2
)

// InvalidSelectionError reports input that is not 1 or 2.
type InvalidSelectionError struct {
	Input string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("Invalid option %s. Should be (1) or (2)", e.Input)
}

// ParseSelection parses one line of user input. Surrounding whitespace is ignored.
func ParseSelection(input string) (Selection, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, &InvalidSelectionError{Input: input}
	}
	switch s := Selection(n); s {
	case SelectionQuandl, SelectionEikon:
		return s, nil
	}
	return 0, &InvalidSelectionError{Input: input}
}

// Actions are run for each selection. A nil action is a no-op.
type Actions struct {
	Quandl func(ctx context.Context) error
	// Eikon has no data source behind it yet.
	Eikon func(ctx context.Context) error
}

// Run prompts on out, reads one line from in and dispatches it. An invalid
// selection is reported on out and is not an error; action errors are returned.
func Run(ctx context.Context, in io.Reader, out io.Writer, actions Actions) error {
	if _, err := fmt.Fprint(out, Prompt); err != nil {
		return err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading selection: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")

	sel, err := ParseSelection(line)
	if err != nil {
		var invalid *InvalidSelectionError
		if errors.As(err, &invalid) {
			_, werr := fmt.Fprintln(out, invalid.Error())
			return werr
		}
		return err
	}

	var action func(context.Context) error
	switch sel {
	case SelectionQuandl:
		action = actions.Quandl
	case SelectionEikon:
		action = actions.Eikon
	}
	if action == nil {
		return nil
	}
	return action(ctx)
}
