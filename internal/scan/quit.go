package scan

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// errQuitRequested is the cancel cause when the operator types the quit word.
var errQuitRequested = errors.New("quit requested")

// CancelOnInput returns a context that is cancelled when a line equal to
// word (case-insensitive) is read from r. The reader goroutine stops at
// EOF; it may outlive the returned context while blocked on r.
func CancelOnInput(ctx context.Context, r io.Reader, word string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(ctx)
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			if strings.EqualFold(strings.TrimSpace(sc.Text()), word) {
				cancel(errQuitRequested)
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
	return ctx, func() { cancel(context.Canceled) }
}
