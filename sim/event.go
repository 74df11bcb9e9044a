package sim

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// NotificationKind identifies what changed in the Simulator.
type NotificationKind string

const (
	NotifyTick    NotificationKind = "tick"
	NotifyStart   NotificationKind = "start"
	NotifyPause   NotificationKind = "pause"
	NotifyResume  NotificationKind = "resume"
	NotifyReset   NotificationKind = "reset"
	NotifyStop    NotificationKind = "stop"
	NotifyConfig  NotificationKind = "config"
	NotifyPolicy  NotificationKind = "policy"
	NotifyProcess NotificationKind = "process"
)

// Notification is delivered to observers after every tick and every externally
// visible mutation. Tick is the clock value once the change has been applied.
type Notification struct {
	Kind NotificationKind
	Tick int64
}

// Subscription is the cancellation handle returned by Subscribe.
type Subscription struct {
	set *observerSet
	id  uint64
}

// Cancel unregisters the observer. Safe to call more than once.
func (sub *Subscription) Cancel() {
	if sub == nil || sub.set == nil {
		return
	}
	sub.set.remove(sub.id)
}

type observerSet struct {
	mu     sync.Mutex
	nextID uint64
	fns    map[uint64]func(Notification)
	order  []uint64
}

func newObserverSet() *observerSet {
	return &observerSet{fns: make(map[uint64]func(Notification))}
}

func (o *observerSet) add(fn func(Notification)) *Subscription {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextID++
	o.fns[o.nextID] = fn
	o.order = append(o.order, o.nextID)
	return &Subscription{set: o, id: o.nextID}
}

func (o *observerSet) remove(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.fns[id]; !ok {
		return
	}
	delete(o.fns, id)
	for i, v := range o.order {
		if v == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

func (o *observerSet) len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.fns)
}

// notify calls every observer in registration order. The set is snapshotted first,
// so observers may subscribe, cancel or read the Simulator from inside the callback.
func (o *observerSet) notify(n Notification) {
	o.mu.Lock()
	fns := make([]func(Notification), 0, len(o.order))
	for _, id := range o.order {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn(n)
	}
}

// Subscribe registers a callback invoked after every tick and after every
// start, pause, resume, reset, stop, configuration, policy or process change.
// A nil callback is not registered; the returned Subscription is inert.
func (s *Simulator) Subscribe(fn func()) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	return s.observers.add(func(Notification) { fn() })
}

// SubscribeNotifications is like Subscribe but the callback receives the Notification.
func (s *Simulator) SubscribeNotifications(fn func(Notification)) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	return s.observers.add(fn)
}

// Watch streams notifications on a buffered channel until ctx is done, at which point
// the observer is unregistered and the channel closed. Sends never block the engine:
// when the buffer is full the notification is dropped.
func (s *Simulator) Watch(ctx context.Context, buffer int) <-chan Notification {
	ch := make(chan Notification, buffer)
	var mu sync.Mutex
	closed := false
	sub := s.observers.add(func(n Notification) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- n:
		default:
			logrus.Debugf("[tick %07d] watcher buffer full, dropped %s notification", n.Tick, n.Kind)
		}
	})
	go func() {
		<-ctx.Done()
		sub.Cancel()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()
	return ch
}
