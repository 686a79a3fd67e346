package bot

import (
	"fmt"
	"sync"
	"time"

	tb "gopkg.in/tucnak/telebot.v2"
)

var (
	WaitTimeoutErr    = fmt.Errorf("no qualifying message arrived in time")
	WaitInProgressErr = fmt.Errorf("an upload is already being collected for this user")
)

// CollectorSet implements time-boxed waits for a follow-up message from a
// specific user. A wait resolves exactly once, with either the first
// qualifying message or a timeout.
type CollectorSet struct {
	mu    sync.Mutex
	waits map[int64]*wait
}

type wait struct {
	match func(m *tb.Message) bool
	done  chan *tb.Message
}

func NewCollectorSet() *CollectorSet {
	return &CollectorSet{waits: make(map[int64]*wait)}
}

// Wait blocks until a qualifying message from userID arrives or the timeout
// elapses, whichever first. At most one wait per user may be outstanding.
func (c *CollectorSet) Wait(userID int64, timeout time.Duration, match func(m *tb.Message) bool) (*tb.Message, error) {
	w := &wait{
		match: match,
		done:  make(chan *tb.Message, 1),
	}
	c.mu.Lock()
	if _, ok := c.waits[userID]; ok {
		c.mu.Unlock()
		return nil, WaitInProgressErr
	}
	c.waits[userID] = w
	c.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case m := <-w.done:
		return m, nil
	case <-timer.C:
	}

	// deregister under the lock so no delivery can slip in afterwards; one
	// may already have raced the timer and sits in the buffered channel
	c.mu.Lock()
	if c.waits[userID] == w {
		delete(c.waits, userID)
	}
	c.mu.Unlock()
	select {
	case m := <-w.done:
		return m, nil
	default:
		return nil, WaitTimeoutErr
	}
}

// Offer hands an inbound message to the collector waiting on its sender, if
// any. The first qualifying message wins; later ones are ignored. Delivery
// and deregistration happen atomically, so a reported delivery is always
// observed by the waiter.
func (c *CollectorSet) Offer(m *tb.Message) (delivered bool) {
	if m.Sender == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.waits[m.Sender.ID]
	if !ok || !w.match(m) {
		return false
	}
	select {
	case w.done <- m:
		delete(c.waits, m.Sender.ID)
		return true
	default:
		return false
	}
}
