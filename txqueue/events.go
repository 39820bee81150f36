package txqueue

import "sync"

// AdmittedEvent is published once per transaction that TryAdd admits,
// whether as a fresh entry or as a fee-bump replacement.
type AdmittedEvent struct {
	Tx Tx
}

// AdmittedFeed is a non-blocking, multi-subscriber event feed in the shape
// of the teacher's NewTxsFeed (core/events.go): a mutex-guarded slice of
// subscriber channels, send-or-drop rather than send-or-block so one slow
// subscriber can never stall admission.
type AdmittedFeed struct {
	mu   sync.RWMutex
	subs []chan<- AdmittedEvent
	log  loggerFunc
}

type loggerFunc func(msg string, ctx ...interface{})

func newAdmittedFeed(log loggerFunc) *AdmittedFeed {
	return &AdmittedFeed{log: log}
}

// Subscribe registers ch to receive future AdmittedEvents. ch's capacity
// bounds how far a subscriber can lag before events start being dropped.
func (f *AdmittedFeed) Subscribe(ch chan<- AdmittedEvent) {
	f.mu.Lock()
	f.subs = append(f.subs, ch)
	f.mu.Unlock()
}

// Unsubscribe removes and closes ch.
func (f *AdmittedFeed) Unsubscribe(ch chan<- AdmittedEvent) {
	f.mu.Lock()
	for i, s := range f.subs {
		if s == ch {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			close(ch)
			break
		}
	}
	f.mu.Unlock()
}

// Close unsubscribes and closes every current subscriber.
func (f *AdmittedFeed) Close() {
	f.mu.Lock()
	for _, sub := range f.subs {
		close(sub)
	}
	f.subs = nil
	f.mu.Unlock()
}

func (f *AdmittedFeed) send(ev AdmittedEvent) {
	f.mu.RLock()
	for _, sub := range f.subs {
		select {
		case sub <- ev:
		default:
			if f.log != nil {
				f.log("AdmittedFeed send dropped: subscriber channel full", "cap", cap(sub))
			}
		}
	}
	f.mu.RUnlock()
}
