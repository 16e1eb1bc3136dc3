package pipeline

import "sync"

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function to ProgressSink.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

// Emit sends evt when sink is non-nil.
func Emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

// Collector records events in arrival order and sums stage timings.
type Collector struct {
	mu      sync.Mutex
	events  []Event
	timings Timings
}

func (c *Collector) OnEvent(evt Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	if evt.Status.Terminal() && evt.Elapsed > 0 {
		c.timings.Add(evt.Stage, evt.Elapsed)
	}
}

// Events returns a copy of the recorded events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// Timings returns a copy of the accumulated stage durations.
func (c *Collector) Timings() Timings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timings
}

// Fanout delivers each event to every sink.
type Fanout []ProgressSink

func (f Fanout) OnEvent(evt Event) {
	for _, s := range f {
		Emit(s, evt)
	}
}
