package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger dumps the raw bytes of received controller frames.
type RawLogger interface {
	Log(source uint32, tick uint64, data []byte)
}

type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRaw returns a RawLogger writing to w, or a no-op logger when w is nil.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

// Log writes one line per frame: timestamp, source, tick, size and hex dump.
func (r *rawLogger) Log(source uint32, tick uint64, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}
	line := fmt.Sprintf("%s src=%d tick=%d %d bytes: % x\n",
		r.now().Format("2006/01/02 15:04:05.000"),
		source,
		tick,
		len(data),
		data,
	)
	r.mu.Lock()
	_, _ = io.WriteString(r.w, line)
	r.mu.Unlock()
}
