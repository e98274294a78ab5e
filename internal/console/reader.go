package console

import (
	"bufio"
	"io"
	"strings"
)

// LineReader reads lines from r in a background goroutine so a caller can
// select on input alongside other events.
type LineReader struct {
	lines chan string
	done  chan struct{}
}

// NewLineReader starts a background goroutine reading lines from r. Blank
// lines are skipped. The Lines channel is closed when r returns EOF or an
// error.
func NewLineReader(r io.Reader) *LineReader {
	lr := &LineReader{
		lines: make(chan string, 16),
		done:  make(chan struct{}),
	}
	go lr.readLoop(r)
	return lr
}

func (lr *LineReader) readLoop(r io.Reader) {
	defer close(lr.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case lr.lines <- line:
		case <-lr.done:
			return
		}
	}
}

// Lines returns the channel of trimmed, non-empty input lines.
func (lr *LineReader) Lines() <-chan string {
	return lr.lines
}

// Stop signals the background goroutine to exit.
// The goroutine may remain blocked on Scan until r produces input or is
// closed; Stop is best-effort.
func (lr *LineReader) Stop() {
	select {
	case <-lr.done:
	default:
		close(lr.done)
	}
}
