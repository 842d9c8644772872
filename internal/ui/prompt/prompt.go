package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter guards destructive operations behind an explicit confirmation.
type Prompter interface {
	// ConfirmDestroy asks the user to type the application name back before
	// a teardown proceeds. Returns false when the input does not match or
	// the input stream ends.
	ConfirmDestroy(appName string, provider string) (bool, error)
}

// StandardPrompter reads confirmations from the given input/output streams.
type StandardPrompter struct {
	reader io.Reader
	writer io.Writer
}

func NewStandardPrompter(in io.Reader, out io.Writer) *StandardPrompter {
	return &StandardPrompter{
		reader: in,
		writer: out,
	}
}

func (p *StandardPrompter) ConfirmDestroy(appName string, provider string) (bool, error) {
	if appName == "" {
		return false, errors.New("expected confirmation value cannot be empty")
	}

	fmt.Fprintf(p.writer, "This will destroy all %s infrastructure for %q. There is no undo.\n", provider, appName)
	fmt.Fprintf(p.writer, "To confirm, type the application name '%s': ", appName)

	reader := bufio.NewReader(p.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("error reading user input: %w", err)
	}

	return strings.TrimSpace(input) == appName, nil
}
