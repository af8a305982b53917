package app

import (
	"strings"
)

// Console is the line-oriented terminal the quiz talks to.
// ReadLine returns io.EOF once input is exhausted.
type Console interface {
	ReadLine(prompt string) (string, error)
	Printf(format string, args ...any)
}

// Request asks prompt until parse accepts the trimmed answer. Rejected answers
// are reported with the parse error and have no other effect.
func Request[T any](c Console, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		raw, err := c.ReadLine(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(strings.TrimSpace(raw))
		if err == nil {
			return v, nil
		}
		c.Printf("Invalid input: %v.\n", err)
	}
}

// Confirm asks a yes/no question; only "y" and "yes" count as yes.
func Confirm(c Console, prompt string) (bool, error) {
	raw, err := c.ReadLine(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
