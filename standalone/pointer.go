//go:build !libretro

package standalone

import (
	"image"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/ndsui/router"
)

// mousePointerID is the pointer ID given to the left mouse button. Touch
// IDs from ebiten are never negative.
const mousePointerID = -1

// PointerTracker turns ebiten's polled mouse and touch state into down,
// move and up events.
type PointerTracker struct {
	prev    map[int]image.Point
	cur     map[int]image.Point
	touches []ebiten.TouchID
}

// NewPointerTracker creates a tracker with no pointers down.
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{
		prev: make(map[int]image.Point),
		cur:  make(map[int]image.Point),
	}
}

// Poll reads the current pointers and returns the events since the last
// call. Coordinates are in screen image pixels.
func (p *PointerTracker) Poll() []router.TouchEvent {
	clear(p.cur)
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.cur[mousePointerID] = image.Pt(x, y)
	}
	p.touches = ebiten.AppendTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		x, y := ebiten.TouchPosition(id)
		p.cur[int(id)] = image.Pt(x, y)
	}
	return p.step()
}

// Reset forgets every pointer. Pointers still down afterwards show up as
// fresh presses on the next Poll.
func (p *PointerTracker) Reset() {
	clear(p.prev)
	clear(p.cur)
}

// step diffs cur against prev and rolls cur into prev.
func (p *PointerTracker) step() []router.TouchEvent {
	events := diffPointers(p.prev, p.cur)
	clear(p.prev)
	for id, pt := range p.cur {
		p.prev[id] = pt
	}
	return events
}

// diffPointers returns the events that move prev to cur, ordered by
// pointer ID. Ups report the last known position.
func diffPointers(prev, cur map[int]image.Point) []router.TouchEvent {
	ids := make([]int, 0, len(prev)+len(cur))
	for id := range prev {
		ids = append(ids, id)
	}
	for id := range cur {
		if _, ok := prev[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	var events []router.TouchEvent
	for _, id := range ids {
		was, hadPrev := prev[id]
		now, hasCur := cur[id]
		switch {
		case hasCur && !hadPrev:
			events = append(events, router.TouchEvent{Action: router.TouchDown, Point: now, PointerID: id})
		case hasCur && now != was:
			events = append(events, router.TouchEvent{Action: router.TouchMove, Point: now, PointerID: id})
		case !hasCur:
			events = append(events, router.TouchEvent{Action: router.TouchUp, Point: was, PointerID: id})
		}
	}
	return events
}
