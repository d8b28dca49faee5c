package dedupe

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// IDGenerator allocates process-unique ticket identifiers of the form
// TKT-<base36 millisecond timestamp>-<counter>. The counter is monotonic for
// the process lifetime and resets to zero on restart.
type IDGenerator struct {
	counter atomic.Int64
	now     func() time.Time
}

// NewIDGenerator returns a generator using wall-clock time.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns a fresh ticket id.
func (g *IDGenerator) Next() string {
	n := g.counter.Add(1)
	ts := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))
	return "TKT-" + ts + "-" + strconv.FormatInt(n, 10)
}
