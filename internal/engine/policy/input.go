package policy

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/KirkDiggler/showdown-player/internal/errors"
)

// LineInput reads lines from a reader in the background and hands them out
// one Await at a time. Lines typed while nobody is waiting are kept in order.
type LineInput struct {
	lines chan string

	mu  sync.Mutex
	err error
}

// NewLineInput starts reading r until EOF.
func NewLineInput(r io.Reader) *LineInput {
	in := &LineInput{
		lines: make(chan string, 16),
	}
	go in.read(r)
	return in
}

func (in *LineInput) read(r io.Reader) {
	defer close(in.lines)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		in.lines <- scanner.Text()
	}

	in.mu.Lock()
	in.err = scanner.Err()
	in.mu.Unlock()
}

// Await returns the next line, or a Canceled error once ctx is done or the
// reader is exhausted.
func (in *LineInput) Await(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", errors.FromContext(ctx.Err(), "wait for input abandoned")
	case line, ok := <-in.lines:
		if ok {
			return line, nil
		}
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.err != nil {
		return "", errors.Wrap(in.err, "failed to read input")
	}
	return "", errors.Canceled("input closed")
}

var _ Input = (*LineInput)(nil)
