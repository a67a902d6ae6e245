package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Human prompts a person at a terminal for each action.
type Human struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewHuman creates a human agent reading actions from in and printing
// observations to out.
func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{reader: bufio.NewReader(in), out: out}
}

// Act prints the observation and reads one line as the action.
func (h *Human) Act(ctx context.Context, observation string) (string, error) {
	fmt.Fprintln(h.out, observation)
	fmt.Fprint(h.out, "Please enter the action: ")

	line, err := h.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read action: %w", err)
	}
	return strings.TrimSpace(line), nil
}
