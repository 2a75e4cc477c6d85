// Package carousel implements the windowed pagination state machine used by
// the project showcase: a bounded page of N cards over an ordered list, with
// manual navigation, swipe gestures and a pause-aware auto-advance timer.
// It is driven by discrete events and is independent of any UI framework.
package carousel

import (
	"context"
	"sync"
	"time"
)

const (
	// AutoAdvanceInterval is how often the running timer fires Next.
	AutoAdvanceInterval = 5 * time.Second

	// SwipeThreshold is the minimum horizontal drag, in logical pixels,
	// for a gesture to count as a swipe.
	SwipeThreshold = 40.0
)

// CardsPerView derives the visible card count from the viewport width.
func CardsPerView(viewportWidth int) int {
	switch {
	case viewportWidth <= 768:
		return 1
	case viewportWidth <= 1024:
		return 2
	default:
		return 3
	}
}

// TimerMode is the auto-advance timer's state.
type TimerMode int

const (
	// TimerIdle: nothing to advance, the timer is never started.
	TimerIdle TimerMode = iota
	// TimerRunning: ticks fire Next every AutoAdvanceInterval.
	TimerRunning
	// TimerPaused: pointer is over the carousel, ticks are ignored.
	TimerPaused
)

// State holds the carousel position. All methods are safe for concurrent
// use. Nothing is persisted; a new State starts at index 0.
type State struct {
	mu           sync.Mutex
	totalItems   int
	cardsPerView int
	currentIndex int
	paused       bool
	animating    bool

	// changed wakes the Loop so it can tear down and recreate its ticker
	// whenever cardsPerView, paused or totalItems change.
	changed chan struct{}
}

// New builds a carousel over totalItems with the given cards-per-view.
// cardsPerView is clamped to {1,2,3}.
func New(totalItems, cardsPerView int) *State {
	s := &State{changed: make(chan struct{}, 1)}
	s.totalItems = max(0, totalItems)
	s.cardsPerView = clampCards(cardsPerView)
	return s
}

func clampCards(n int) int {
	if n < 1 {
		return 1
	}
	if n > 3 {
		return 3
	}
	return n
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MaxIndex is the highest legal currentIndex: max(0, totalItems-cardsPerView).
func (s *State) MaxIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxIndexLocked()
}

func (s *State) maxIndexLocked() int {
	return max(0, s.totalItems-s.cardsPerView)
}

// Index returns the current index.
func (s *State) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex
}

// Window returns the [start, end) slice bounds of the visible page.
func (s *State) Window() (start, end int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start = s.currentIndex
	end = start + s.cardsPerView
	if end > s.totalItems {
		end = s.totalItems
	}
	return start, end
}

// ShowControls reports whether navigation makes sense at all.
func (s *State) ShowControls() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems > s.cardsPerView
}

// Next advances by one page, wrapping to 0 from the end.
func (s *State) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextLocked()
}

func (s *State) nextLocked() {
	maxIdx := s.maxIndexLocked()
	if s.currentIndex >= maxIdx {
		s.currentIndex = 0
		return
	}
	s.currentIndex += s.cardsPerView
	if s.currentIndex > maxIdx {
		s.currentIndex = maxIdx
	}
}

// Prev retreats by one page, wrapping to the last page from 0.
func (s *State) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	maxIdx := s.maxIndexLocked()
	if s.currentIndex <= 0 {
		s.currentIndex = maxIdx
		return
	}
	s.currentIndex -= s.cardsPerView
	if s.currentIndex < 0 {
		s.currentIndex = 0
	}
}

// GotoPage jumps to page p (currentIndex = p*cardsPerView, clamped).
// Ignored while a transition animation is in flight.
func (s *State) GotoPage(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.animating {
		return
	}
	idx := p * s.cardsPerView
	if idx < 0 {
		idx = 0
	}
	if maxIdx := s.maxIndexLocked(); idx > maxIdx {
		idx = maxIdx
	}
	s.currentIndex = idx
}

// BeginTransition marks an animation window during which GotoPage is ignored.
func (s *State) BeginTransition() {
	s.mu.Lock()
	s.animating = true
	s.mu.Unlock()
}

// EndTransition clears the animation window.
func (s *State) EndTransition() {
	s.mu.Lock()
	s.animating = false
	s.mu.Unlock()
}

// SetItems replaces the item count, re-clamping the index.
func (s *State) SetItems(n int) {
	s.mu.Lock()
	s.totalItems = max(0, n)
	if maxIdx := s.maxIndexLocked(); s.currentIndex > maxIdx {
		s.currentIndex = maxIdx
	}
	s.mu.Unlock()
	s.notify()
}

// Resize rederives cardsPerView from a viewport width, re-clamping the index.
func (s *State) Resize(viewportWidth int) {
	s.mu.Lock()
	s.cardsPerView = CardsPerView(viewportWidth)
	if maxIdx := s.maxIndexLocked(); s.currentIndex > maxIdx {
		s.currentIndex = maxIdx
	}
	s.mu.Unlock()
	s.notify()
}

// PointerEnter pauses auto-advance.
func (s *State) PointerEnter() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
	s.notify()
}

// PointerLeave resumes auto-advance.
func (s *State) PointerLeave() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
	s.notify()
}

// Mode returns the auto-advance timer state implied by the current config.
func (s *State) Mode() TimerMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.totalItems <= s.cardsPerView:
		return TimerIdle
	case s.paused:
		return TimerPaused
	default:
		return TimerRunning
	}
}

// Tick is one auto-advance timer event. It fires Next only in TimerRunning
// mode and reports whether the index moved.
func (s *State) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.totalItems <= s.cardsPerView || s.paused {
		return false
	}
	s.nextLocked()
	return true
}

// Swipe handles a completed drag gesture. A horizontal drag beyond
// SwipeThreshold that dominates the vertical component navigates:
// leftward (negative dx) goes Next, rightward goes Prev. Anything smaller
// or primarily vertical is ignored.
func (s *State) Swipe(dx, dy float64) {
	absX, absY := dx, dy
	if absX < 0 {
		absX = -absX
	}
	if absY < 0 {
		absY = -absY
	}
	if absX < SwipeThreshold || absX <= absY {
		return
	}
	if dx < 0 {
		s.Next()
	} else {
		s.Prev()
	}
}

func (s *State) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Loop drives the auto-advance timer until ctx is done. The ticker is torn
// down and recreated whenever cardsPerView, paused or totalItems change.
// onChange is called with the new index after every automatic advance.
func (s *State) Loop(ctx context.Context, onChange func(index int)) {
	ticker := time.NewTicker(AutoAdvanceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.changed:
			ticker.Reset(AutoAdvanceInterval)
		case <-ticker.C:
			if s.Tick() && onChange != nil {
				onChange(s.Index())
			}
		}
	}
}
