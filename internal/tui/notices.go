package tui

import (
	"sync"

	"interior-cli/internal/session"
)

type notice struct {
	sev session.Severity
	msg string
}

// noticeQueue is the session's Notifier on the interactive screen. Notifications can
// arrive from command goroutines (view, share), so they are buffered and drained on
// the update loop.
type noticeQueue struct {
	mu    sync.Mutex
	items []notice
}

func (q *noticeQueue) Notify(sev session.Severity, msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, notice{sev: sev, msg: msg})
}

func (q *noticeQueue) drain() []notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// changeLog collects session changes between updates.
type changeLog struct {
	mu      sync.Mutex
	changes map[session.Change]bool
}

func (c *changeLog) record(ch session.Change) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.changes == nil {
		c.changes = map[session.Change]bool{}
	}
	c.changes[ch] = true
}

func (c *changeLog) take() map[session.Change]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.changes
	c.changes = nil
	return out
}
