//go:build !libretro

package standalone

import (
	"image"
	"testing"

	"github.com/user-none/ndsui/router"
)

func TestDiffPointers(t *testing.T) {
	tests := []struct {
		name string
		prev map[int]image.Point
		cur  map[int]image.Point
		want []router.TouchEvent
	}{
		{
			name: "nothing",
		},
		{
			name: "press",
			cur:  map[int]image.Point{mousePointerID: {10, 20}},
			want: []router.TouchEvent{
				{Action: router.TouchDown, Point: image.Pt(10, 20), PointerID: mousePointerID},
			},
		},
		{
			name: "held still",
			prev: map[int]image.Point{3: {5, 5}},
			cur:  map[int]image.Point{3: {5, 5}},
		},
		{
			name: "drag",
			prev: map[int]image.Point{3: {5, 5}},
			cur:  map[int]image.Point{3: {6, 9}},
			want: []router.TouchEvent{
				{Action: router.TouchMove, Point: image.Pt(6, 9), PointerID: 3},
			},
		},
		{
			name: "release uses last position",
			prev: map[int]image.Point{3: {6, 9}},
			want: []router.TouchEvent{
				{Action: router.TouchUp, Point: image.Pt(6, 9), PointerID: 3},
			},
		},
		{
			name: "multi touch ordered by id",
			prev: map[int]image.Point{2: {1, 1}, 0: {0, 0}},
			cur:  map[int]image.Point{0: {0, 1}, 1: {7, 7}},
			want: []router.TouchEvent{
				{Action: router.TouchMove, Point: image.Pt(0, 1), PointerID: 0},
				{Action: router.TouchDown, Point: image.Pt(7, 7), PointerID: 1},
				{Action: router.TouchUp, Point: image.Pt(1, 1), PointerID: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diffPointers(tt.prev, tt.cur)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d events %+v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPointerTrackerStep(t *testing.T) {
	p := NewPointerTracker()

	p.cur[1] = image.Pt(4, 4)
	if ev := p.step(); len(ev) != 1 || ev[0].Action != router.TouchDown {
		t.Fatalf("first step = %+v", ev)
	}

	clear(p.cur)
	if ev := p.step(); len(ev) != 1 || ev[0].Action != router.TouchUp {
		t.Fatalf("second step = %+v", ev)
	}

	if ev := p.step(); len(ev) != 0 {
		t.Fatalf("idle step = %+v", ev)
	}
}

func TestPointerTrackerReset(t *testing.T) {
	p := NewPointerTracker()
	p.cur[1] = image.Pt(4, 4)
	p.step()

	p.Reset()
	p.cur[1] = image.Pt(4, 4)
	if ev := p.step(); len(ev) != 1 || ev[0].Action != router.TouchDown {
		t.Fatalf("after reset = %+v, want fresh press", ev)
	}
}
