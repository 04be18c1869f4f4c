// Package lightbox tracks a set of registered images and a cursor over
// them for full-screen viewing.
package lightbox

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var (
	ErrHandleInvalid = errors.New("invalid image handle")
	ErrEmpty         = errors.New("no images registered")
	ErrClosed        = errors.New("lightbox is closed")
)

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Handle identifies a registration. A handle goes stale when its image is
// unregistered and never resolves to a later registration in the same slot.
// The zero Handle never resolves.
type Handle struct {
	slot uint32
	gen  uint32
}

func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	return fmt.Sprintf("%d.%d", h.slot, h.gen)
}

func (h Handle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Handle) UnmarshalText(text []byte) error {
	parsed, err := ParseHandle(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func ParseHandle(s string) (Handle, error) {
	slotPart, genPart, ok := strings.Cut(s, ".")
	if !ok {
		return Handle{}, fmt.Errorf("%w: %q", ErrHandleInvalid, s)
	}
	slot, err := strconv.ParseUint(slotPart, 10, 32)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %q", ErrHandleInvalid, s)
	}
	gen, err := strconv.ParseUint(genPart, 10, 32)
	if err != nil || gen == 0 {
		return Handle{}, fmt.Errorf("%w: %q", ErrHandleInvalid, s)
	}
	return Handle{slot: uint32(slot), gen: uint32(gen)}, nil
}

// View describes one image in the context of the whole set.
type View struct {
	Handle Handle `json:"handle"`
	Image  Image  `json:"image"`
	Index  int    `json:"index"`
	Total  int    `json:"total"`
	Next   Handle `json:"next"`
	Prev   Handle `json:"prev"`
}

type Entry struct {
	Handle Handle `json:"handle"`
	Image  Image  `json:"image"`
}

type slot struct {
	image Image
	gen   uint32
	live  bool
	seq   uint64
}

// Arena is safe for concurrent use.
type Arena struct {
	mu      sync.RWMutex
	slots   []slot
	free    []uint32
	nextSeq uint64

	open    bool
	current Handle
}

func New() *Arena {
	return &Arena{}
}

func (a *Arena) Register(img Image) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextSeq++
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.gen++
	s.image = img
	s.live = true
	s.seq = a.nextSeq
	return Handle{slot: idx, gen: s.gen}
}

func (a *Arena) Unregister(h Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.validLocked(h) {
		return fmt.Errorf("%w: %s", ErrHandleInvalid, h)
	}
	s := &a.slots[h.slot]
	s.live = false
	s.image = Image{}
	a.free = append(a.free, h.slot)
	if a.open && a.current == h {
		a.moveOffLocked(h)
	}
	return nil
}

// moveOffLocked points the cursor at the image after the removed one, or
// closes the lightbox when none remain.
func (a *Arena) moveOffLocked(removed Handle) {
	entries := a.entriesLocked()
	if len(entries) == 0 {
		a.open = false
		a.current = Handle{}
		return
	}
	seq := a.slots[removed.slot].seq
	for _, e := range entries {
		if a.slots[e.Handle.slot].seq > seq {
			a.current = e.Handle
			return
		}
	}
	a.current = entries[0].Handle
}

func (a *Arena) validLocked(h Handle) bool {
	if h.gen == 0 || int(h.slot) >= len(a.slots) {
		return false
	}
	s := a.slots[h.slot]
	return s.live && s.gen == h.gen
}

// Images lists live registrations in registration order.
func (a *Arena) Images() []Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.entriesLocked()
}

func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := 0
	for _, s := range a.slots {
		if s.live {
			n++
		}
	}
	return n
}

func (a *Arena) entriesLocked() []Entry {
	entries := make([]Entry, 0, len(a.slots))
	for i, s := range a.slots {
		if s.live {
			entries = append(entries, Entry{Handle: Handle{slot: uint32(i), gen: s.gen}, Image: s.image})
		}
	}
	// slots are reused, so slot order is not registration order
	sort.SliceStable(entries, func(i, j int) bool {
		return a.slots[entries[i].Handle.slot].seq < a.slots[entries[j].Handle.slot].seq
	})
	return entries
}

// Lookup describes h without moving the cursor.
func (a *Arena) Lookup(h Handle) (View, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.validLocked(h) {
		return View{}, fmt.Errorf("%w: %s", ErrHandleInvalid, h)
	}
	return a.viewLocked(h), nil
}

// Open shows h. The zero Handle opens the first image. A stale handle is
// an error.
func (a *Arena) Open(h Handle) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if h.IsZero() {
		entries := a.entriesLocked()
		if len(entries) == 0 {
			return View{}, ErrEmpty
		}
		h = entries[0].Handle
	} else if !a.validLocked(h) {
		return View{}, fmt.Errorf("%w: %s", ErrHandleInvalid, h)
	}
	a.open = true
	a.current = h
	return a.viewLocked(h), nil
}

func (a *Arena) Next() (View, error) {
	return a.step(func(v View) Handle { return v.Next })
}

func (a *Arena) Prev() (View, error) {
	return a.step(func(v View) Handle { return v.Prev })
}

func (a *Arena) step(pick func(View) Handle) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.open {
		return View{}, ErrClosed
	}
	a.current = pick(a.viewLocked(a.current))
	return a.viewLocked(a.current), nil
}

// Current returns the open image.
func (a *Arena) Current() (View, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.open {
		return View{}, false
	}
	return a.viewLocked(a.current), true
}

func (a *Arena) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.open = false
	a.current = Handle{}
}

func (a *Arena) IsOpen() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.open
}

func (a *Arena) viewLocked(h Handle) View {
	entries := a.entriesLocked()
	total := len(entries)
	for i, e := range entries {
		if e.Handle != h {
			continue
		}
		return View{
			Handle: h,
			Image:  e.Image,
			Index:  i,
			Total:  total,
			Next:   entries[(i+1)%total].Handle,
			Prev:   entries[(i-1+total)%total].Handle,
		}
	}
	return View{}
}
