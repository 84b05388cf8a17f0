package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Prompter asks the user for the function name. Injected so the
// orchestrator stays testable without a terminal.
type Prompter interface {
	FunctionName(defaultName string) (string, error)
}

// TerminalPrompter reads the answer from an input stream, normally stdin.
type TerminalPrompter struct {
	in  io.Reader
	out io.Writer
}

func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{in: os.Stdin, out: os.Stdout}
}

func (p *TerminalPrompter) FunctionName(defaultName string) (string, error) {
	fmt.Fprintf(p.out, "Function name %s: ", color.New(color.FgCyan).Sprintf("[%s]", defaultName))

	reader := bufio.NewReader(p.in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read function name: %w", err)
	}

	name := strings.TrimSpace(line)
	if name == "" {
		return defaultName, nil
	}
	return name, nil
}

// Static answers with a fixed name, for non-interactive runs and tests.
type Static struct {
	Name string
}

func (p *Static) FunctionName(defaultName string) (string, error) {
	if p.Name == "" {
		return defaultName, nil
	}
	return p.Name, nil
}
