package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Direction of a raw transport frame.
type Direction string

const (
	In  Direction = "<-"
	Out Direction = "->"
)

// RawLogger records raw transport frames, one per line.
type RawLogger interface {
	Log(dir Direction, session string, frame []byte)
	Enabled() bool
}

// NewRaw returns a RawLogger writing to w. A nil w discards everything.
func NewRaw(w io.Writer) RawLogger {
	if w == nil {
		return nopRaw{}
	}
	return &rawLogger{w: w}
}

type rawLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *rawLogger) Log(dir Direction, session string, frame []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.w, "%s %s [%s] %s\n", time.Now().Format(time.RFC3339Nano), dir, session, frame)
}

func (l *rawLogger) Enabled() bool { return true }

type nopRaw struct{}

func (nopRaw) Log(Direction, string, []byte) {}
func (nopRaw) Enabled() bool                 { return false }
