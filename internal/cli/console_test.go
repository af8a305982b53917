package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleReadsLines(t *testing.T) {
	var out bytes.Buffer
	c := newConsole(context.Background(), strings.NewReader("alpha\r\nbeta\n"), &out)

	line, err := c.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "alpha", line)

	line, err = c.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "beta", line)

	_, err = c.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)

	c.Printf("score %d\n", 3)
	assert.Equal(t, "> > > score 3\n", out.String())
}

func TestConsoleUnblocksOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	defer pw.Close()
	c := newConsole(ctx, pr, io.Discard)

	done := make(chan error, 1)
	go func() {
		_, err := c.ReadLine("> ")
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	case <-time.After(time.Second):
		t.Fatal("ReadLine did not return after cancel")
	}
}
