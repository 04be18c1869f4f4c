package querystate

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultDelay is how long the synchronizer waits for input to settle
// before writing the URL.
const DefaultDelay = 200 * time.Millisecond

type Options struct {
	// Delay defaults to DefaultDelay when zero or negative.
	Delay  time.Duration
	Logger *log.Logger
}

// Synchronizer owns a State and mirrors it into the router's query string.
// The URL is read once by Init; afterwards state flows only from setters to
// the URL, never back.
type Synchronizer struct {
	mu          sync.Mutex
	router      Router
	state       State
	initialized bool
	closed      bool

	debouncer *Debouncer
	logger    *log.Entry

	subscribers map[int]func(State)
	nextSub     int
}

func New(router Router, opts Options) *Synchronizer {
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Synchronizer{
		router:      router,
		state:       State{Tags: []string{}},
		debouncer:   NewDebouncer(delay),
		logger:      logger.WithField("component", "querystate"),
		subscribers: make(map[int]func(State)),
	}
}

// Init reads q and tags from the router and returns the resulting state.
// Only the first call reads; later calls return the current state.
func (s *Synchronizer) Init() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return s.snapshotLocked()
	}
	s.initialized = true

	values := map[string][]string{}
	if q, ok := s.router.QueryParam(ParamQuery); ok {
		values[ParamQuery] = []string{q}
	}
	if tags, ok := s.router.QueryParam(ParamTags); ok {
		values[ParamTags] = []string{tags}
	}
	s.state = Decode(values)
	s.logger.WithFields(log.Fields{"query": s.state.Query, "tags": s.state.Tags}).Debug("initialized from url")
	return s.snapshotLocked()
}

func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Synchronizer) SetQuery(query string) {
	s.update(func(st *State) { st.Query = query })
}

// ToggleTag adds tag if inactive and removes it otherwise.
func (s *Synchronizer) ToggleTag(tag string) {
	s.update(func(st *State) {
		for i, t := range st.Tags {
			if t == tag {
				st.Tags = append(st.Tags[:i:i], st.Tags[i+1:]...)
				return
			}
		}
		st.Tags = append(st.Tags, tag)
	})
}

func (s *Synchronizer) SetTags(tags []string) {
	s.update(func(st *State) { st.Tags = append([]string(nil), tags...) })
}

func (s *Synchronizer) ClearTags() {
	s.update(func(st *State) { st.Tags = nil })
}

// Reset clears query and tags, drops any pending write and collapses the
// URL to its bare path immediately.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.debouncer.Cancel()
	s.state = State{Tags: []string{}}
	initialized := s.initialized
	s.mu.Unlock()

	if initialized {
		s.write()
		return
	}
	s.notify(State{Tags: []string{}})
}

// Flush performs any pending write now.
func (s *Synchronizer) Flush() {
	s.debouncer.Flush()
}

// Close cancels the pending write. Setters become no-ops.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.debouncer.Stop()
}

// OnChange registers fn to receive each settled state. The returned
// function unregisters it.
func (s *Synchronizer) OnChange(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Synchronizer) update(mutate func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	mutate(&s.state)
	s.state = s.state.Normalize()
	s.debouncer.Trigger(s.write)
}

// write mirrors the current state into the router unless the router
// already shows an equivalent URL.
func (s *Synchronizer) write() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	state := s.snapshotLocked()
	initialized := s.initialized
	s.mu.Unlock()

	if initialized {
		target := Encode(s.router.Path(), state)
		current := s.router.Current()
		if Canonical(current) == target {
			s.logger.WithField("url", target).Debug("url unchanged")
		} else if err := s.router.Replace(target); err != nil {
			s.logger.WithError(err).WithField("url", target).Warn("replace url")
		} else {
			s.logger.WithField("url", target).Debug("url replaced")
		}
	}
	s.notify(state)
}

func (s *Synchronizer) notify(state State) {
	s.mu.Lock()
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(state)
	}
}

func (s *Synchronizer) snapshotLocked() State {
	return State{Query: s.state.Query, Tags: append([]string{}, s.state.Tags...)}
}
