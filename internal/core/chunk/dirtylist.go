package chunk

// DirtyList is an intrusive singly-linked queue of chunks pending a
// main-thread remesh. Each chunk is enqueued at most once (guarded by
// InDirtyList) and is meant to be walked and drained once per frame.
type DirtyList struct {
	head *Chunk
	tail *Chunk
	n    int
}

// Push appends c to the list if it is not already present. Returns false
// if c was already queued (a no-op, matching the double-insertion
// guard in the error-handling contract).
func (d *DirtyList) Push(c *Chunk) bool {
	if c.InDirtyList {
		return false
	}
	c.InDirtyList = true
	c.DirtyNext = nil
	if d.tail == nil {
		d.head = c
		d.tail = c
	} else {
		d.tail.DirtyNext = c
		d.tail = c
	}
	d.n++
	return true
}

// Len returns the number of chunks currently queued.
func (d *DirtyList) Len() int { return d.n }

// Drain visits every queued chunk via fn. fn returns true if the chunk was
// fully processed and should be removed from the list; returning false
// keeps it queued for a later frame (used for chunks still Generating).
func (d *DirtyList) Drain(fn func(*Chunk) bool) {
	var newHead, newTail *Chunk
	remaining := 0

	for c := d.head; c != nil; {
		next := c.DirtyNext
		c.DirtyNext = nil

		if fn(c) {
			c.InDirtyList = false
		} else {
			if newTail == nil {
				newHead = c
				newTail = c
			} else {
				newTail.DirtyNext = c
				newTail = c
			}
			remaining++
		}
		c = next
	}

	d.head = newHead
	d.tail = newTail
	d.n = remaining
}
