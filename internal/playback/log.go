package playback

// Log is an append-only, ordered list of events.
type Log struct {
	events []Event
}

func (l *Log) Append(events ...Event) {
	l.events = append(l.events, events...)
}

// Has reports whether any event of kind k was appended.
func (l *Log) Has(k Kind) bool {
	for _, e := range l.events {
		if e.Kind() == k {
			return true
		}
	}
	return false
}

// HasSound reports whether a HitSound with the given sound was appended.
func (l *Log) HasSound(sound string) bool {
	for _, e := range l.events {
		if hs, ok := e.(HitSound); ok && hs.Sound == sound {
			return true
		}
	}
	return false
}

// Events returns the events in emission order.
func (l *Log) Events() []Event {
	return l.events
}

func (l *Log) Len() int {
	return len(l.events)
}
