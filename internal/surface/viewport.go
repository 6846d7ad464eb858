package surface

import (
	"math"
	"sync"
)

// Viewport is the window a canvas lives in: it knows the device pixel
// ratio and announces resizes.
type Viewport interface {
	DevicePixelRatio() float64
	// OnResize registers fn for every later resize. The returned cancel
	// func unregisters it and is safe to call more than once.
	OnResize(fn func()) (cancel func())
}

// EffectiveRatio clamps a reported device pixel ratio to at least 1; an
// unavailable (zero or NaN) ratio counts as 1.
func EffectiveRatio(v Viewport) float64 {
	if v == nil {
		return 1
	}
	r := v.DevicePixelRatio()
	if math.IsNaN(r) || r < 1 {
		return 1
	}
	return r
}

type listener struct {
	id int
	fn func()
}

// Window is a Viewport whose ratio and resize events are driven by the
// caller: the fyne adapter in the desktop app and tests.
type Window struct {
	mu        sync.Mutex
	ratio     float64
	nextID    int
	listeners []listener
}

func NewWindow(ratio float64) *Window {
	return &Window{ratio: ratio}
}

func (w *Window) DevicePixelRatio() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ratio
}

// SetDevicePixelRatio changes the reported ratio without firing a resize.
func (w *Window) SetDevicePixelRatio(r float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ratio = r
}

func (w *Window) OnResize(fn func()) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	id := w.nextID
	w.listeners = append(w.listeners, listener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { w.remove(id) })
	}
}

func (w *Window) remove(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, l := range w.listeners {
		if l.id == id {
			w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
			return
		}
	}
}

// Resize notifies every registered listener in registration order.
func (w *Window) Resize() {
	w.mu.Lock()
	fns := make([]func(), len(w.listeners))
	for i, l := range w.listeners {
		fns[i] = l.fn
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Listeners returns how many resize listeners are registered.
func (w *Window) Listeners() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}
