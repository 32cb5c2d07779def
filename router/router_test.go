package router

import (
	"image"
	"testing"

	"github.com/user-none/ndsui/display"
)

type fakeOverlay struct {
	claims []image.Rectangle
	keys   map[int]int
	seen   int
}

func (o *fakeOverlay) HitTest(ev TouchEvent) bool {
	o.seen++
	for _, r := range o.claims {
		if ev.Point.In(r) {
			return true
		}
	}
	return false
}

func (o *fakeOverlay) KeyBinding(key int) (int, bool) {
	id, ok := o.keys[key]
	return id, ok
}

type press struct {
	id   int
	down bool
}

type fakeButtons struct {
	presses []press
}

func (b *fakeButtons) Press(id int, down bool) {
	b.presses = append(b.presses, press{id, down})
}

func newState(w, h int, force bool) *display.State {
	s := display.NewState(display.Params{SourceWidth: 256, SourceHeight: 384, ForceTouch: force})
	s.SetSurface(w, h, display.PixelFormatRGBA8888)
	return s
}

func TestRouteTouchTargets(t *testing.T) {
	tests := []struct {
		name  string
		force bool
		pt    image.Point
		want  Target
	}{
		{"Touch region center", false, image.Pt(600, 240), Target{Kind: TargetTouchscreen, X: 128, Y: 96, Pressed: true}},
		{"Touch region origin", false, image.Pt(400, 0), Target{Kind: TargetTouchscreen, X: 0, Y: 0, Pressed: true}},
		{"Main region", false, image.Pt(200, 240), Target{}},
		{"Overlay claim", false, image.Pt(10, 10), Target{Kind: TargetOverlay}},
		{"Overlay claim in touch region", false, image.Pt(790, 470), Target{Kind: TargetOverlay}},
		{"Force touch on main region clamps", true, image.Pt(200, 240), Target{Kind: TargetTouchscreen, X: 0, Y: 96, Pressed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ov := &fakeOverlay{claims: []image.Rectangle{image.Rect(0, 0, 20, 20), image.Rect(780, 460, 800, 480)}}
			r := New(newState(800, 480, tt.force), ov, nil)

			got := r.RouteTouch(TouchEvent{Action: TouchDown, Point: tt.pt})
			if got != tt.want {
				t.Errorf("RouteTouch(%v) = %+v, want %+v", tt.pt, got, tt.want)
			}
			if ov.seen != 1 {
				t.Errorf("overlay saw %d events, want 1", ov.seen)
			}
		})
	}
}

func TestRouteTouchForceNeverIgnored(t *testing.T) {
	ov := &fakeOverlay{}
	r := New(newState(480, 800, true), ov, nil)

	for y := -100; y <= 900; y += 37 {
		for x := -100; x <= 580; x += 29 {
			got := r.RouteTouch(TouchEvent{Action: TouchMove, Point: image.Pt(x, y)})
			if got.Kind != TargetTouchscreen {
				t.Fatalf("(%d,%d) routed to %v with force-touch on", x, y, got.Kind)
			}
			if got.X < 0 || got.X > 255 || got.Y < 0 || got.Y > 191 {
				t.Fatalf("(%d,%d) mapped outside panel: (%d,%d)", x, y, got.X, got.Y)
			}
		}
	}
}

func TestRouteTouchForceWithHiddenTouchPanel(t *testing.T) {
	s := newState(800, 480, true)
	s.SetScreenMode(display.ScreenModeMainOnly)
	r := New(s, nil, nil)

	got := r.RouteTouch(TouchEvent{Action: TouchDown, Point: image.Pt(400, 240)})
	want := Target{Kind: TargetTouchscreen, X: 128, Y: 96, Pressed: true}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	// Without force-touch a hidden panel receives nothing
	s.SetForceTouch(false)
	r.Release()
	if got := r.RouteTouch(TouchEvent{Action: TouchDown, Point: image.Pt(400, 240)}); got.Kind != TargetIgnored {
		t.Errorf("got %v, want ignored", got.Kind)
	}
}

func TestRouteTouchPointerOwnership(t *testing.T) {
	ov := &fakeOverlay{claims: []image.Rectangle{image.Rect(0, 0, 20, 20)}}
	r := New(newState(800, 480, false), ov, nil)

	down := r.RouteTouch(TouchEvent{Action: TouchDown, Point: image.Pt(600, 240), PointerID: 1})
	if down.Kind != TargetTouchscreen || !down.Pressed {
		t.Fatalf("down = %+v", down)
	}

	// Second pointer cannot take the touchscreen
	other := r.RouteTouch(TouchEvent{Action: TouchDown, Point: image.Pt(500, 100), PointerID: 2})
	if other.Kind != TargetIgnored {
		t.Errorf("second pointer = %+v, want ignored", other)
	}

	// Dragging off the panel, even over an overlay button, stays on the touchscreen
	drag := r.RouteTouch(TouchEvent{Action: TouchMove, Point: image.Pt(10, 10), PointerID: 1})
	if drag.Kind != TargetTouchscreen || drag.X != 0 || !drag.Pressed {
		t.Errorf("drag = %+v", drag)
	}

	up := r.RouteTouch(TouchEvent{Action: TouchUp, Point: image.Pt(100, 100), PointerID: 1})
	if up.Kind != TargetTouchscreen || up.Pressed {
		t.Errorf("up = %+v, want touchscreen release", up)
	}

	// After release the main region is ignored again
	after := r.RouteTouch(TouchEvent{Action: TouchDown, Point: image.Pt(100, 100), PointerID: 1})
	if after.Kind != TargetIgnored {
		t.Errorf("after release = %+v", after)
	}
}

func TestRouteTouchBeforeLayoutAndAfterTeardown(t *testing.T) {
	s := display.NewState(display.Params{SourceWidth: 256, SourceHeight: 384, ForceTouch: true})
	ov := &fakeOverlay{claims: []image.Rectangle{image.Rect(0, 0, 1000, 1000)}}
	r := New(s, ov, nil)

	if got := r.RouteTouch(TouchEvent{Point: image.Pt(10, 10)}); got.Kind != TargetIgnored {
		t.Errorf("before layout: %v", got.Kind)
	}
	if ov.seen != 0 {
		t.Error("overlay must not see events before the first layout")
	}

	s.SetSurface(800, 480, display.PixelFormatRGBA8888)
	if got := r.RouteTouch(TouchEvent{Point: image.Pt(10, 10)}); got.Kind != TargetOverlay {
		t.Errorf("ready: %v", got.Kind)
	}

	s.Teardown()
	if got := r.RouteTouch(TouchEvent{Point: image.Pt(10, 10)}); got.Kind != TargetIgnored {
		t.Errorf("after teardown: %v", got.Kind)
	}
}

func TestRouteTouchDegenerateOutput(t *testing.T) {
	r := New(newState(0, 480, true), nil, nil)
	if got := r.RouteTouch(TouchEvent{Point: image.Pt(0, 0)}); got.Kind != TargetIgnored {
		t.Errorf("got %v, want ignored", got.Kind)
	}
}

func TestRouteKey(t *testing.T) {
	ov := &fakeOverlay{keys: map[int]int{65: 4, 66: 5}}
	btn := &fakeButtons{}
	r := New(newState(800, 480, false), ov, btn)

	tests := []struct {
		name string
		ev   KeyEvent
		want KeyResult
	}{
		{"Bound down", KeyEvent{Code: 65, Down: true}, KeyConsumed},
		{"Bound up", KeyEvent{Code: 65, Down: false}, KeyConsumed},
		{"Unbound", KeyEvent{Code: 99, Down: true}, KeyUnconsumed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RouteKey(tt.ev); got != tt.want {
				t.Errorf("RouteKey(%+v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}

	want := []press{{4, true}, {4, false}}
	if len(btn.presses) != len(want) {
		t.Fatalf("presses = %v, want %v", btn.presses, want)
	}
	for i := range want {
		if btn.presses[i] != want[i] {
			t.Errorf("press %d = %v, want %v", i, btn.presses[i], want[i])
		}
	}
}

func TestRouteKeyWithoutLayout(t *testing.T) {
	ov := &fakeOverlay{keys: map[int]int{65: 4}}
	btn := &fakeButtons{}
	r := New(display.NewState(display.Params{}), ov, btn)
	if got := r.RouteKey(KeyEvent{Code: 65, Down: true}); got != KeyConsumed {
		t.Errorf("got %v, want consumed", got)
	}
	if len(btn.presses) != 1 || btn.presses[0] != (press{4, true}) {
		t.Errorf("presses = %v", btn.presses)
	}

	r = New(newState(800, 480, false), nil, nil)
	if got := r.RouteKey(KeyEvent{Code: 65, Down: true}); got != KeyUnconsumed {
		t.Errorf("no overlay: got %v, want unconsumed", got)
	}
}

func TestRouteKeyReleaseAcrossDegenerateSurface(t *testing.T) {
	tests := []struct {
		name    string
		degrade func(s *display.State)
	}{
		{"Zero surface", func(s *display.State) { s.SetSurface(0, 0, display.PixelFormatRGBA8888) }},
		{"Teardown", func(s *display.State) { s.Teardown() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(800, 480, false)
			ov := &fakeOverlay{keys: map[int]int{42: 0}}
			btn := &fakeButtons{}
			r := New(s, ov, btn)

			r.RouteKey(KeyEvent{Code: 42, Down: true})
			tt.degrade(s)
			if got := r.RouteKey(KeyEvent{Code: 42, Down: false}); got != KeyConsumed {
				t.Errorf("release = %v, want consumed", got)
			}
			want := []press{{0, true}, {0, false}}
			if len(btn.presses) != len(want) {
				t.Fatalf("presses = %v, want %v", btn.presses, want)
			}
			for i := range want {
				if btn.presses[i] != want[i] {
					t.Errorf("press %d = %v, want %v", i, btn.presses[i], want[i])
				}
			}
		})
	}
}

func TestRelease(t *testing.T) {
	r := New(newState(800, 480, false), nil, nil)
	if r.Release() {
		t.Error("nothing held yet")
	}
	r.RouteTouch(TouchEvent{Action: TouchDown, Point: image.Pt(600, 240)})
	if !r.Release() {
		t.Error("expected held touchscreen")
	}
	if r.Release() {
		t.Error("release must clear ownership")
	}
}
