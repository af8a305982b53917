package app_test

import (
	"fmt"
	"io"
	"strings"
)

// scriptConsole feeds canned lines and records everything printed.
type scriptConsole struct {
	lines   []string
	prompts []string
	out     strings.Builder
}

func newScript(lines ...string) *scriptConsole {
	return &scriptConsole{lines: lines}
}

func (c *scriptConsole) ReadLine(prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	c.out.WriteString(prompt)
	if len(c.lines) == 0 {
		return "", io.EOF
	}
	line := c.lines[0]
	c.lines = c.lines[1:]
	return line, nil
}

func (c *scriptConsole) Printf(format string, args ...any) {
	fmt.Fprintf(&c.out, format, args...)
}

func (c *scriptConsole) remaining() int {
	return len(c.lines)
}

func (c *scriptConsole) count(substr string) int {
	return strings.Count(c.out.String(), substr)
}
