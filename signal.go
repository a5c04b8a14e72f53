package arbor

// slot is one registered listener.
type slot[T any] struct {
	id uint32
	fn func(T)
}

// registry is an ordered listener list. Removal rebuilds the slice so an
// emit in progress keeps iterating the list it started with.
type registry[T any] struct {
	slots  []slot[T]
	nextID uint32
}

func (r *registry[T]) add(fn func(T)) uint32 {
	r.nextID++
	r.slots = append(r.slots, slot[T]{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *registry[T]) remove(id uint32) {
	for i := range r.slots {
		if r.slots[i].id == id {
			next := make([]slot[T], 0, len(r.slots)-1)
			next = append(next, r.slots[:i]...)
			r.slots = append(next, r.slots[i+1:]...)
			return
		}
	}
}

func (r *registry[T]) len() int {
	if r == nil {
		return 0
	}
	return len(r.slots)
}

// stateChange is the payload of lifecycle listeners.
type stateChange struct {
	node  *Node
	state State
}

// Connection is the handle returned when a listener is connected to a Node.
// The zero value is valid and Close on it is a no-op.
type Connection struct {
	id        uint32
	node      *Node
	lifecycle bool
}

// Close disconnects the listener. Closing twice is harmless.
func (c Connection) Close() {
	if c.node == nil {
		return
	}
	if c.lifecycle {
		if c.node.stateListeners != nil {
			c.node.stateListeners.remove(c.id)
		}
		return
	}
	if c.node.events != nil {
		c.node.events.remove(c.id)
	}
}
