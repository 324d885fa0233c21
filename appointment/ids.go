package appointment

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator hands out appointment ids.
type IDGenerator interface {
	NewID() string
}

// UUIDs generates random v4 UUID strings.
type UUIDs struct{}

func (UUIDs) NewID() string {
	return uuid.NewString()
}

// ClockSequence generates millisecond timestamp ids that never repeat within
// the process: when the clock has not advanced past the last id it returns
// last+1 instead.
type ClockSequence struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewClockSequence(now func() time.Time) *ClockSequence {
	if now == nil {
		now = time.Now
	}
	return &ClockSequence{now: now}
}

func (c *ClockSequence) NewID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.now().UnixMilli()
	if next <= c.last {
		next = c.last + 1
	}
	c.last = next
	return strconv.FormatInt(next, 10)
}
