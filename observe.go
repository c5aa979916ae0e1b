package notes

import "sync"

// observers is a list of change callbacks. Callbacks run synchronously, in subscription order, on the goroutine
// that made the change, and never with the owner's lock held, so they may read the owner's state.
type observers struct {
	mu   sync.Mutex
	next int
	fns  []observer
}

type observer struct {
	id int
	fn func()
}

func (o *observers) subscribe(fn func()) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.next++
	id := o.next
	o.fns = append(o.fns, observer{id: id, fn: fn})
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, ob := range o.fns {
			if ob.id == id {
				o.fns = append(o.fns[:i:i], o.fns[i+1:]...)
				return
			}
		}
	}
}

func (o *observers) notify() {
	o.mu.Lock()
	fns := make([]observer, len(o.fns))
	copy(fns, o.fns)
	o.mu.Unlock()
	for _, ob := range fns {
		ob.fn()
	}
}
