package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// console is an app.Console over a line reader and a writer. Reads happen on
// a background goroutine so a cancelled context unblocks a pending prompt.
type console struct {
	ctx context.Context
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan string
	err   error
}

func newConsole(ctx context.Context, in io.Reader, out io.Writer) *console {
	return &console{ctx: ctx, in: in, out: out}
}

func (c *console) start() {
	c.lines = make(chan string)
	go func() {
		defer close(c.lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case c.lines <- scanner.Text():
			case <-c.ctx.Done():
				return
			}
		}
		// c.err is set before the deferred close, readers see it after !ok
		if err := scanner.Err(); err != nil {
			c.err = err
		} else {
			c.err = io.EOF
		}
	}()
}

func (c *console) ReadLine(prompt string) (string, error) {
	c.once.Do(c.start)
	fmt.Fprint(c.out, prompt)

	select {
	case line, ok := <-c.lines:
		if !ok {
			if c.ctx.Err() != nil {
				return "", c.ctx.Err()
			}
			return "", c.err
		}
		return strings.TrimRight(line, "\r"), nil
	case <-c.ctx.Done():
		return "", c.ctx.Err()
	}
}

func (c *console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
