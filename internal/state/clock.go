package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// GestureID identifies one pointer gesture in logs.
type GestureID string

// GestureClock hands out gesture IDs scoped to one session.
type GestureClock struct {
	session string
	seq     atomic.Uint64
}

func NewGestureClock() *GestureClock {
	return &GestureClock{session: uuid.NewString()}
}

// Session returns the ID shared by every gesture of this clock.
func (c *GestureClock) Session() string {
	return c.session
}

// Next returns a fresh ID; the sequence starts at 1.
func (c *GestureClock) Next() GestureID {
	return GestureID(fmt.Sprintf("%s-%d", c.session, c.seq.Add(1)))
}
