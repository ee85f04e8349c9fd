package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureTap GestureType = iota
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
	GestureLongPress
)

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
)

// ClassifyGesture decides which gesture a touch travelling by delta during
// duration was. Movement shorter than swipeThreshold is a tap or, when held
// long enough, a long press.
func ClassifyGesture(delta fyne.Delta, duration time.Duration, swipeThreshold float32, longPress time.Duration) GestureType {
	distanceSq := delta.DX*delta.DX + delta.DY*delta.DY
	if distanceSq >= swipeThreshold*swipeThreshold {
		return swipeDirection(delta.DX, delta.DY)
	}
	if duration >= longPress {
		return GestureLongPress
	}
	return GestureTap
}

// IsTap reports whether a drag by delta stayed strictly within TapSlop on
// both axes
func IsTap(delta fyne.Delta) bool {
	return abs32(delta.DX) < TapSlop && abs32(delta.DY) < TapSlop
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// swipeDirection determines the direction of a swipe gesture
func swipeDirection(dx, dy float32) GestureType {
	if abs32(dx) > abs32(dy) {
		if dx > 0 {
			return GestureSwipeRight
		}
		return GestureSwipeLeft
	}
	if dy > 0 {
		return GestureSwipeDown
	}
	return GestureSwipeUp
}

// GestureHandler handles mobile gestures
type GestureHandler struct {
	onGesture func(GestureType)
	now       func() time.Time

	// Touch tracking
	touchStartTime time.Time
	touchStartPos  fyne.Position

	// Gesture thresholds
	swipeThreshold    float32
	longPressDuration time.Duration
}

// NewGestureHandler creates a new gesture handler
func NewGestureHandler(onGesture func(GestureType)) *GestureHandler {
	return &GestureHandler{
		onGesture:         onGesture,
		now:               time.Now,
		swipeThreshold:    DefaultSwipeThreshold,
		longPressDuration: DefaultLongPressDuration,
	}
}

// TouchDown handles touch down events for gesture detection
func (gh *GestureHandler) TouchDown(event *mobile.TouchEvent) {
	gh.touchStartTime = gh.now()
	gh.touchStartPos = event.Position
}

// TouchUp handles touch up events for gesture detection
func (gh *GestureHandler) TouchUp(event *mobile.TouchEvent) {
	if gh.touchStartTime.IsZero() {
		return
	}

	delta := fyne.NewDelta(event.Position.X-gh.touchStartPos.X, event.Position.Y-gh.touchStartPos.Y)
	gesture := ClassifyGesture(delta, gh.now().Sub(gh.touchStartTime), gh.swipeThreshold, gh.longPressDuration)
	gh.touchStartTime = time.Time{}

	if gh.onGesture != nil {
		gh.onGesture(gesture)
	}
}

// TouchCancel handles touch cancel events
func (gh *GestureHandler) TouchCancel(event *mobile.TouchEvent) {
	gh.touchStartTime = time.Time{}
}

// PullToRefresh wraps content and calls refresh on a downward swipe.
// A new refresh is ignored until EndRefresh is called.
type PullToRefresh struct {
	widget.BaseWidget

	content        fyne.CanvasObject
	gestureHandler *GestureHandler
	refresh        func()

	mu         sync.Mutex
	refreshing bool
}

// NewPullToRefresh creates a new pull-to-refresh wrapper
func NewPullToRefresh(content fyne.CanvasObject, refresh func()) *PullToRefresh {
	ptr := &PullToRefresh{
		content: content,
		refresh: refresh,
	}
	ptr.gestureHandler = NewGestureHandler(ptr.handleGesture)
	ptr.ExtendBaseWidget(ptr)
	return ptr
}

// CreateRenderer implements fyne.Widget
func (ptr *PullToRefresh) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ptr.content)
}

// Trigger starts a refresh unless one is already running
func (ptr *PullToRefresh) Trigger() bool {
	ptr.mu.Lock()
	if ptr.refreshing || ptr.refresh == nil {
		ptr.mu.Unlock()
		return false
	}
	ptr.refreshing = true
	ptr.mu.Unlock()

	ptr.refresh()
	return true
}

// EndRefresh allows the next refresh
func (ptr *PullToRefresh) EndRefresh() {
	ptr.mu.Lock()
	ptr.refreshing = false
	ptr.mu.Unlock()
}

// IsRefreshing reports whether a refresh is running
func (ptr *PullToRefresh) IsRefreshing() bool {
	ptr.mu.Lock()
	defer ptr.mu.Unlock()
	return ptr.refreshing
}

func (ptr *PullToRefresh) handleGesture(gesture GestureType) {
	if gesture == GestureSwipeDown {
		ptr.Trigger()
	}
}

// TouchDown handles touch down events
func (ptr *PullToRefresh) TouchDown(event *mobile.TouchEvent) {
	ptr.gestureHandler.TouchDown(event)
}

// TouchUp handles touch up events
func (ptr *PullToRefresh) TouchUp(event *mobile.TouchEvent) {
	ptr.gestureHandler.TouchUp(event)
}

// TouchCancel handles touch cancel events
func (ptr *PullToRefresh) TouchCancel(event *mobile.TouchEvent) {
	ptr.gestureHandler.TouchCancel(event)
}
