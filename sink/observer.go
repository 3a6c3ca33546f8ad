package sink

// Observer is told whenever Committed changes. Implementations must be cheap;
// they run inline with the write that caused the change.
type Observer interface {
	CommittedChanged(s *Sink, old, new int)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(s *Sink, old, new int)

func (f ObserverFunc) CommittedChanged(s *Sink, old, new int) { f(s, old, new) }

// Observe installs o, replacing any previous observer. Pass nil to detach.
func (s *Sink) Observe(o Observer) { s.observer = o }

// Version increases by one every time Committed changes. Callers that cache
// length-derived state can poll it instead of installing an Observer.
func (s *Sink) Version() uint64 { return s.version }

func (s *Sink) setCommitted(n int) {
	old := s.committed
	if old == n {
		return
	}
	s.committed = n
	s.version++
	if s.observer != nil {
		s.observer.CommittedChanged(s, old, n)
	}
}
