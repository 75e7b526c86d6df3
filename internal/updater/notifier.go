package updater

import "sync"

// Dispatcher fans a products-changed signal out to in-process subscribers
// and to any chained sinks (the websocket hub, typically). It satisfies
// the catalog's Notifier interface.
type Dispatcher struct {
	mu    sync.RWMutex
	subs  []chan struct{}
	sinks []func()
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe returns a channel that receives a signal whenever the product
// set changes. The channel is buffered; a subscriber that has not drained a
// pending signal does not receive duplicates and never blocks the sender.
func (d *Dispatcher) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	d.mu.Lock()
	d.subs = append(d.subs, ch)
	d.mu.Unlock()
	return ch
}

// AddSink chains a callback invoked on every products-changed signal.
func (d *Dispatcher) AddSink(fn func()) {
	d.mu.Lock()
	d.sinks = append(d.sinks, fn)
	d.mu.Unlock()
}

// NotifyProductsChanged signals every subscriber and sink.
func (d *Dispatcher) NotifyProductsChanged() {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, ch := range d.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	for _, fn := range d.sinks {
		fn()
	}
}
