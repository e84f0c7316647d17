package engine

// Continuations is the post-render queue. Functions deferred while handling an
// event run after the console has rendered that event.
type Continuations struct {
	queue []func()
}

// NewContinuations creates an empty queue.
func NewContinuations() *Continuations {
	return &Continuations{}
}

// Defer queues fn for the next flush.
func (c *Continuations) Defer(fn func()) {
	if fn == nil {
		return
	}
	c.queue = append(c.queue, fn)
}

// Len returns the number of pending continuations.
func (c *Continuations) Len() int {
	return len(c.queue)
}

// Flush runs pending continuations in order. Continuations deferred during
// the flush wait for the next one.
func (c *Continuations) Flush() int {
	q := c.queue
	c.queue = nil
	for _, fn := range q {
		fn()
	}
	return len(q)
}
